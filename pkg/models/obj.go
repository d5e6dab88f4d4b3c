package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrBadOBJ is wrapped by every OBJ parse error.
var ErrBadOBJ = errors.New("malformed obj")

// objRef is one corner of an OBJ face: position, texture and normal
// indices, zero-based, with -1 for an omitted component.
type objRef struct {
	v, vt, vn int
}

type objParser struct {
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3

	mesh      *Mesh
	seen      map[objRef]int
	noNormals bool
}

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads OBJ geometry from r. It understands v, vt, vn and f
// records; f accepts the v, v/vt, v//vn and v/vt/vn forms with 1-based or
// negative (relative) indices, and polygons are split into triangle fans.
// Other records are ignored. The third vt component is discarded. When any
// face corner has no normal, smooth normals are computed for the mesh.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	p := &objParser{
		mesh: NewMesh(name),
		seen: make(map[objRef]int),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadOBJ, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if p.noNormals {
		p.mesh.CalculateSmoothNormals()
	}
	p.mesh.CalculateBounds()
	return p.mesh, nil
}

func (p *objParser) parseLine(text string) error {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, math3d.V3(v[0], v[1], v[2]))
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("texture vertex: %w", err)
		}
		p.uvs = append(p.uvs, math3d.V2(v[0], v[1]))
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, math3d.V3(v[0], v[1], v[2]))
	case "f":
		return p.parseFace(fields[1:])
	case "o":
		if len(fields) > 1 && p.mesh.Name == "" {
			p.mesh.Name = fields[1]
		}
	}
	return nil
}

// parseFloats parses at least n leading fields as floats.
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs 3 corners, got %d", len(fields))
	}

	corners := make([]int, len(fields))
	for i, f := range fields {
		ref, err := p.parseRef(f)
		if err != nil {
			return fmt.Errorf("face corner %q: %w", f, err)
		}
		corners[i] = p.vertex(ref)
	}

	for i := 1; i+1 < len(corners); i++ {
		p.mesh.AddFace(corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (p *objParser) parseRef(s string) (objRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objRef{}, errors.New("too many components")
	}

	ref := objRef{v: -1, vt: -1, vn: -1}
	var err error
	if ref.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return objRef{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if ref.vt, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
			return objRef{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ref.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return objRef{}, err
		}
	}
	return ref, nil
}

// resolveIndex converts a 1-based or negative OBJ index into a 0-based
// index into a list of n elements.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d defined)", i, n)
}

// vertex returns the mesh vertex for ref, creating it on first use.
func (p *objParser) vertex(ref objRef) int {
	if i, ok := p.seen[ref]; ok {
		return i
	}

	v := MeshVertex{Position: p.positions[ref.v]}
	if ref.vt >= 0 {
		v.UV = p.uvs[ref.vt]
	}
	if ref.vn >= 0 {
		v.Normal = p.normals[ref.vn]
	} else {
		p.noNormals = true
	}

	i := p.mesh.AddVertex(v)
	p.seen[ref] = i
	return i
}
