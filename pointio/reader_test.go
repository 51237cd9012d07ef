package pointio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/salesman/geom"
	"github.com/katalvlaran/salesman/pointio"
)

func TestRead_Basic(t *testing.T) {
	in := `
1 0 0
2   0  10

3	10 10
  4 10 0
`
	pts, err := pointio.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10), geom.Pt(10, 0)}, pts)
}

func TestRead_IDsDecideIndex(t *testing.T) {
	pts, err := pointio.Read(strings.NewReader("2 5 5\n1 1.5 -2\n"))
	require.NoError(t, err)
	require.Equal(t, []geom.Point{geom.Pt(1.5, -2), geom.Pt(5, 5)}, pts)
}

func TestRead_Empty(t *testing.T) {
	pts, err := pointio.Read(strings.NewReader("\n  \n"))
	require.NoError(t, err)
	require.Empty(t, pts)
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
		line string
	}{
		{"two fields", "1 0 0\n2 5\n", pointio.ErrMalformedLine, "line 2"},
		{"four fields", "1 0 0 0\n", pointio.ErrMalformedLine, "line 1"},
		{"bad id", "x 0 0\n", pointio.ErrMalformedLine, "line 1"},
		{"bad x", "1 a 0\n", pointio.ErrMalformedLine, "line 1"},
		{"bad y", "1 0 b\n", pointio.ErrMalformedLine, "line 1"},
		{"id zero", "0 0 0\n", pointio.ErrBadID, "line 1"},
		{"id too large", "1 0 0\n3 1 1\n", pointio.ErrBadID, "line 2"},
		{"id repeated", "1 0 0\n\n1 1 1\n", pointio.ErrBadID, "line 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pointio.Read(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cities.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0 0\n2 3 4\n"), 0o644))

	pts, err := pointio.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	require.Equal(t, 5.0, pts[0].DistanceTo(pts[1]))

	_, err = pointio.ReadFile(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1 0\n"), 0o644))
	_, err = pointio.ReadFile(bad)
	require.ErrorIs(t, err, pointio.ErrMalformedLine)
	require.Contains(t, err.Error(), "bad.txt")
}
