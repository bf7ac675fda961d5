// Copyright (C) 2025, VigilantDoomer
//
// This file is part of RoadGen program.
//
// RoadGen is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// RoadGen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RoadGen.  If not, see <https://www.gnu.org/licenses/>.

// udmf_map.go
package main

// Map is an append-only store of level entities. Ids handed out by Add*
// methods are dense, start from 0 and are never reused. Cross references are
// not validated here, only when the map is written as TEXTMAP
type Map struct {
	Vertices    []Vertex
	Linedefs    []Linedef
	Sidedefs    []Sidedef
	Sectors     []Sector
	Textures    []string
	PlayerStart *PlayerStart
}

func NewMap() *Map {
	return &Map{}
}

func nextId(curLen int) (uint32, error) {
	if uint64(curLen) > uint64(ID_MAX) {
		return ID_INVALID, NewRoadError(ERR_RANGE, "too many elements in UDMF map")
	}
	return uint32(curLen), nil
}

func (m *Map) AddVertex(v Vertex) (uint32, error) {
	id, err := nextId(len(m.Vertices))
	if err != nil {
		return id, err
	}
	m.Vertices = append(m.Vertices, v)
	return id, nil
}

func (m *Map) AddLinedef(l Linedef) (uint32, error) {
	id, err := nextId(len(m.Linedefs))
	if err != nil {
		return id, err
	}
	m.Linedefs = append(m.Linedefs, l)
	return id, nil
}

func (m *Map) AddSidedef(sd Sidedef) (uint32, error) {
	id, err := nextId(len(m.Sidedefs))
	if err != nil {
		return id, err
	}
	m.Sidedefs = append(m.Sidedefs, sd)
	return id, nil
}

func (m *Map) AddSector(s Sector) (uint32, error) {
	id, err := nextId(len(m.Sectors))
	if err != nil {
		return id, err
	}
	m.Sectors = append(m.Sectors, s)
	return id, nil
}

func (m *Map) AddTexture(name string) uint32 {
	m.Textures = append(m.Textures, name)
	return uint32(len(m.Textures) - 1)
}

// SetPlayerStart records player start only once, later calls are ignored.
// Returns whether this call had an effect
func (m *Map) SetPlayerStart(ps PlayerStart) bool {
	if m.PlayerStart != nil {
		return false
	}
	m.PlayerStart = &ps
	return true
}

// MapStats is used for the summary printed after generation
type MapStats struct {
	Vertices, Linedefs, Sidedefs, Sectors int
}

func (m *Map) Stats() MapStats {
	return MapStats{
		Vertices: len(m.Vertices),
		Linedefs: len(m.Linedefs),
		Sidedefs: len(m.Sidedefs),
		Sectors:  len(m.Sectors),
	}
}
