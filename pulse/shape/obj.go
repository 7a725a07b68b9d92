package shape

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrTooManyVertices = errors.New("mesh exceeds the uint16 index range")

// Mesh is indexed geometry imported from a wavefront obj file. The second vertex
// attribute holds the texture coordinate.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint16
}

type objCorner struct {
	Position int
	Coord    int
}

// LoadOBJ parses the positions, texture coordinates and faces of an obj file. Faces with
// more than three corners are split into a fan of triangles. Every object starts a new mesh.
func LoadOBJ(source string) ([]Mesh, error) {
	var positions [][3]float32
	var coords [][2]float32

	var meshes []Mesh

	var mesh Mesh
	var lookup map[objCorner]uint16

	reset := func(name string) {
		mesh = Mesh{Name: name}
		lookup = map[objCorner]uint16{}
	}

	finalize := func() {
		if len(mesh.Indices) == 0 {
			return
		}

		meshes = append(meshes, mesh)
	}

	reset("")

	for lineNo, line := range enumerate(strings.Lines(source)) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o":
			finalize()
			reset(strings.Join(fields[1:], " "))

		case "v":
			values, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse position: %w", lineNo, err)
			}

			positions = append(positions, [3]float32{values[0], values[1], values[2]})

		case "vt":
			values, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse texture coordinate: %w", lineNo, err)
			}

			coords = append(coords, [2]float32{values[0], values[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least three corners", lineNo)
			}

			var face []uint16
			for _, field := range fields[1:] {
				corner, err := parseCorner(field, len(positions), len(coords))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}

				idx, ok := lookup[corner]
				if !ok {
					if len(mesh.Vertices) > math.MaxUint16 {
						return nil, fmt.Errorf("line %d: %w", lineNo, ErrTooManyVertices)
					}

					idx = uint16(len(mesh.Vertices))
					lookup[corner] = idx

					mesh.Vertices = append(mesh.Vertices, cornerVertex(corner, positions, coords))
				}

				face = append(face, idx)
			}

			for idx := 1; idx < len(face)-1; idx++ {
				mesh.Indices = append(mesh.Indices, face[0], face[idx], face[idx+1])
			}
		}
	}

	finalize()

	return meshes, nil
}

func cornerVertex(corner objCorner, positions [][3]float32, coords [][2]float32) Vertex {
	vertex := Vertex{Position: positions[corner.Position]}

	if corner.Coord >= 0 {
		uv := coords[corner.Coord]

		// obj puts v=0 at the bottom, webgpu samples with v=0 at the top
		vertex.ColorOrCoord = [3]float32{uv[0], 1 - uv[1], 0}
	}

	return vertex
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero based indices.
// A missing texture coordinate is returned as -1.
func parseCorner(input string, positionCount, coordCount int) (objCorner, error) {
	parts := strings.Split(input, "/")

	position, err := parseIndex(parts[0], positionCount)
	if err != nil {
		return objCorner{}, fmt.Errorf("parse position index %q: %w", input, err)
	}

	corner := objCorner{Position: position, Coord: -1}

	if len(parts) >= 2 && parts[1] != "" {
		corner.Coord, err = parseIndex(parts[1], coordCount)
		if err != nil {
			return objCorner{}, fmt.Errorf("parse texture coordinate index %q: %w", input, err)
		}
	}

	return corner, nil
}

// parseIndex resolves a one based, possibly negative (relative), obj index.
func parseIndex(input string, count int) (int, error) {
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, err
	}

	if value < 0 {
		value = count + value + 1
	}

	if value < 1 || value > count {
		return 0, fmt.Errorf("index %d of %d: %w", value, count, ErrIndexRange)
	}

	return value - 1, nil
}

func parseFloats(fields []string, count int) ([]float32, error) {
	if len(fields) < count {
		return nil, fmt.Errorf("expected %d values, got %d", count, len(fields))
	}

	values := make([]float32, count)
	for idx := range count {
		value, err := strconv.ParseFloat(fields[idx], 32)
		if err != nil {
			return nil, err
		}

		values[idx] = float32(value)
	}

	return values, nil
}

func enumerate(lines func(yield func(string) bool)) func(yield func(int, string) bool) {
	return func(yield func(int, string) bool) {
		lineNo := 1
		for line := range lines {
			if !yield(lineNo, line) {
				return
			}

			lineNo++
		}
	}
}
