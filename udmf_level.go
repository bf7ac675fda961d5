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

// udmf_level.go
package main

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"text/scanner"

	"github.com/pkg/errors"
)

const (
	UDMF_VALUE_NUMBER = iota
	UDMF_VALUE_STRING
	UDMF_VALUE_BOOL
)

type udmfValue struct {
	kind int
	num  float64
	str  string
	b    bool
}

// One of "thing", "vertex", ... blocks with its assignments
type udmfBlock struct {
	kind   string
	pos    scanner.Position
	fields map[string]udmfValue
}

type textmapParser struct {
	s   scanner.Scanner
	err error
}

func (p *textmapParser) fail(format string, a ...interface{}) {
	if p.err == nil {
		p.err = errors.Errorf("%s: "+format, append([]interface{}{p.s.Position}, a...)...)
	}
}

// parseUDMF splits TEXTMAP into global assignments and blocks
func parseUDMF(data []byte) (map[string]udmfValue, []udmfBlock, error) {
	p := &textmapParser{}
	p.s.Init(bytes.NewReader(data))
	p.s.Filename = LUMP_TEXTMAP
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail("%s", msg)
	}
	globals := make(map[string]udmfValue)
	var blocks []udmfBlock
	for tok := p.s.Scan(); tok != scanner.EOF && p.err == nil; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.fail("expected identifier, got %q", p.s.TokenText())
			break
		}
		name := p.s.TokenText()
		switch p.s.Scan() {
		case '=':
			v := p.value()
			p.expect(';')
			globals[name] = v
		case '{':
			blk := udmfBlock{kind: name, pos: p.s.Position,
				fields: make(map[string]udmfValue)}
			p.blockBody(&blk)
			blocks = append(blocks, blk)
		default:
			p.fail("expected '=' or '{' after %q", name)
		}
	}
	return globals, blocks, p.err
}

func (p *textmapParser) expect(r rune) {
	if p.err != nil {
		return
	}
	if tok := p.s.Scan(); tok != r {
		p.fail("expected %q, got %q", r, p.s.TokenText())
	}
}

func (p *textmapParser) blockBody(blk *udmfBlock) {
	for p.err == nil {
		tok := p.s.Scan()
		if tok == '}' {
			return
		}
		if tok != scanner.Ident {
			p.fail("expected key or '}', got %q", p.s.TokenText())
			return
		}
		key := p.s.TokenText()
		p.expect('=')
		v := p.value()
		p.expect(';')
		blk.fields[key] = v
	}
}

func (p *textmapParser) value() udmfValue {
	if p.err != nil {
		return udmfValue{}
	}
	tok := p.s.Scan()
	sign := 1.0
	if tok == '-' || tok == '+' {
		if tok == '-' {
			sign = -1.0
		}
		tok = p.s.Scan()
		if tok != scanner.Int && tok != scanner.Float {
			p.fail("expected number after sign, got %q", p.s.TokenText())
			return udmfValue{}
		}
	}
	switch tok {
	case scanner.Int, scanner.Float:
		f, err := strconv.ParseFloat(p.s.TokenText(), 64)
		if err != nil {
			// hexadecimal integers are allowed by UDMF
			n, err2 := strconv.ParseInt(p.s.TokenText(), 0, 64)
			if err2 != nil {
				p.fail("bad number %q", p.s.TokenText())
				return udmfValue{}
			}
			f = float64(n)
		}
		return udmfValue{kind: UDMF_VALUE_NUMBER, num: sign * f}
	case scanner.String:
		s, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			p.fail("bad string %s", p.s.TokenText())
			return udmfValue{}
		}
		return udmfValue{kind: UDMF_VALUE_STRING, str: s}
	case scanner.Ident:
		switch p.s.TokenText() {
		case "true":
			return udmfValue{kind: UDMF_VALUE_BOOL, b: true}
		case "false":
			return udmfValue{kind: UDMF_VALUE_BOOL, b: false}
		}
	}
	p.fail("bad value %q", p.s.TokenText())
	return udmfValue{}
}

// blockReader extracts typed fields out of a block, remembering the first
// failure
type blockReader struct {
	b   *udmfBlock
	err error
}

func (r *blockReader) fail(format string, a ...interface{}) {
	if r.err == nil {
		r.err = errors.Errorf("%s: %s: "+format,
			append([]interface{}{r.b.pos, r.b.kind}, a...)...)
	}
}

func (r *blockReader) num(key string, def float64, required bool) float64 {
	v, ok := r.b.fields[key]
	if !ok {
		if required {
			r.fail("missing '%s'", key)
		}
		return def
	}
	if v.kind != UDMF_VALUE_NUMBER {
		r.fail("'%s' must be a number", key)
		return def
	}
	return v.num
}

func (r *blockReader) integer(key string, def int, required bool) int {
	f := r.num(key, float64(def), required)
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		r.fail("'%s' must be an integer", key)
		return def
	}
	return int(f)
}

func (r *blockReader) id(key string, def uint32, required bool) uint32 {
	n := r.integer(key, int(int32(def)), required)
	if _, ok := r.b.fields[key]; !ok {
		return def
	}
	if n < 0 {
		r.fail("'%s' must not be negative", key)
		return def
	}
	return uint32(n)
}

func (r *blockReader) flag(key string) bool {
	v, ok := r.b.fields[key]
	if !ok {
		return false
	}
	if v.kind != UDMF_VALUE_BOOL {
		r.fail("'%s' must be true or false", key)
		return false
	}
	return v.b
}

func (r *blockReader) str(key string, def string, required bool) string {
	v, ok := r.b.fields[key]
	if !ok {
		if required {
			r.fail("missing '%s'", key)
		}
		return def
	}
	if v.kind != UDMF_VALUE_STRING {
		r.fail("'%s' must be a string", key)
		return def
	}
	return v.str
}

// Texture names are interned in the order of first use, "-" always being
// the first one
type textureTable struct {
	m   *Map
	ids map[string]uint32
}

func newTextureTable(m *Map) *textureTable {
	tt := &textureTable{m: m, ids: make(map[string]uint32)}
	tt.intern(TEXTURE_NONE_NAME)
	return tt
}

func (tt *textureTable) intern(name string) uint32 {
	if id, ok := tt.ids[name]; ok {
		return id
	}
	id := tt.m.AddTexture(name)
	tt.ids[name] = id
	return id
}

// ParseTEXTMAP reads a UDMF TEXTMAP lump. Player 1 start is taken from the
// first thing of type 1, other things as well as unknown blocks and keys are
// skipped. References are not checked here
func ParseTEXTMAP(data []byte) (*Map, error) {
	globals, blocks, err := parseUDMF(data)
	if err != nil {
		return nil, err
	}
	if ns, ok := globals["namespace"]; !ok || ns.kind != UDMF_VALUE_STRING {
		return nil, errors.New("TEXTMAP: missing namespace")
	}
	m := NewMap()
	tt := newTextureTable(m)
	for i := range blocks {
		r := &blockReader{b: &blocks[i]}
		switch blocks[i].kind {
		case "thing":
			if r.integer("type", 0, true) == THING_PLAYER1_START {
				m.SetPlayerStart(PlayerStart{
					X:     r.num("x", 0, true),
					Y:     r.num("y", 0, true),
					Angle: r.integer("angle", 0, false),
				})
			}
		case "vertex":
			v := Vertex{X: r.num("x", 0, true), Y: r.num("y", 0, true)}
			if _, ok := r.b.fields["zfloor"]; ok {
				v = v.WithZFloor(r.num("zfloor", 0, true))
			}
			if _, ok := r.b.fields["zceiling"]; ok {
				v.HaveZCeiling = true
				v.ZCeiling = r.num("zceiling", 0, true)
			}
			m.Vertices = append(m.Vertices, v)
		case "linedef":
			m.Linedefs = append(m.Linedefs, readLinedef(r))
		case "sidedef":
			m.Sidedefs = append(m.Sidedefs, Sidedef{
				Sector:        r.id("sector", 0, true),
				TextureTop:    tt.intern(r.str("texturetop", TEXTURE_NONE_NAME, false)),
				TextureBottom: tt.intern(r.str("texturebottom", TEXTURE_NONE_NAME, false)),
				TextureMiddle: tt.intern(r.str("texturemiddle", TEXTURE_NONE_NAME, false)),
				OffsetX:       r.integer("offsetx", 0, false),
				OffsetY:       r.integer("offsety", 0, false),
			})
		case "sector":
			m.Sectors = append(m.Sectors, readSector(r, tt))
		default:
			Log.Verbose(2, "%s: skipping unknown block '%s'\n", blocks[i].pos,
				blocks[i].kind)
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return m, nil
}

func readLinedef(r *blockReader) Linedef {
	l := Linedef{
		V1:            r.id("v1", 0, true),
		V2:            r.id("v2", 0, true),
		SideFront:     r.id("sidefront", 0, true),
		SideBack:      r.id("sideback", ID_INVALID, false),
		Tag:           r.id("id", 0, false),
		TwoSided:      r.flag("twosided"),
		Blocking:      r.flag("blocking"),
		BlockMonsters: r.flag("blockmonsters"),
		DontPegTop:    r.flag("dontpegtop"),
		DontPegBottom: r.flag("dontpegbottom"),
		Secret:        r.flag("secret"),
		DontDraw:      r.flag("dontdraw"),
		Mapped:        r.flag("mapped"),
	}
	a := &l.Action
	a.Special = r.integer("special", 0, false)
	for i := range a.Args {
		a.Args[i] = r.integer("arg"+strconv.Itoa(i), 0, false)
	}
	a.RepeatSpecial = r.flag("repeatspecial")
	a.PlayerUse = r.flag("playeruse")
	a.PlayerCross = r.flag("playercross")
	a.MonsterCross = r.flag("monstercross")
	a.MonsterUse = r.flag("monsteruse")
	a.Impact = r.flag("impact")
	a.PlayerPush = r.flag("playerpush")
	a.MonsterPush = r.flag("monsterpush")
	a.MissileCross = r.flag("missilecross")
	return l
}

func readSector(r *blockReader, tt *textureTable) Sector {
	s := Sector{
		HeightFloor:    r.integer("heightfloor", 0, false),
		HeightCeiling:  r.integer("heightceiling", 0, false),
		TextureFloor:   tt.intern(r.str("texturefloor", TEXTURE_NONE_NAME, true)),
		TextureCeiling: tt.intern(r.str("textureceiling", TEXTURE_NONE_NAME, true)),
		Special:        r.id("special", 0, false),
		Tag:            r.id("id", 0, false),
	}
	light := r.integer("lightlevel", UDMF_DEFAULT_LIGHTLEVEL, false)
	if !inRange(light, 0, 255) {
		r.fail("'lightlevel' must be between 0 and 255")
	}
	s.LightLevel = uint8(light)
	s.FloorPlane = PlaneEquation{
		A: r.num("floorplane_a", 0, false),
		B: r.num("floorplane_b", 0, false),
		C: r.num("floorplane_c", 0, false),
		D: r.num("floorplane_d", 0, false),
	}
	s.CeilingPlane = PlaneEquation{
		A: r.num("ceilingplane_a", 0, false),
		B: r.num("ceilingplane_b", 0, false),
		C: r.num("ceilingplane_c", 0, false),
		D: r.num("ceilingplane_d", 0, false),
	}
	return s
}

// LoadTEXTMAP finds the map marker and returns the TEXTMAP lump following it
func LoadTEXTMAP(wad *WadFile, mapName string) ([]byte, error) {
	idx := wad.FindLump(mapName, 0)
	if idx == -1 {
		return nil, errors.Errorf("map %s not found", mapName)
	}
	if idx+1 >= len(wad.Dir) || wad.LumpName(idx+1) != LUMP_TEXTMAP {
		return nil, errors.Errorf("map %s is not in UDMF format: no TEXTMAP after the marker",
			mapName)
	}
	if wad.FindLump(LUMP_ENDMAP, idx+2) == -1 {
		return nil, errors.Errorf("map %s has no ENDMAP", mapName)
	}
	return wad.LumpData(idx + 1), nil
}

// VerifyWad reads the map back from a written wad, and checks that every
// reference in it is valid
func VerifyWad(fname string, mapName string) (MapStats, error) {
	wad, err := ReadWadFile(fname)
	if err != nil {
		return MapStats{}, err
	}
	textmap, err := LoadTEXTMAP(wad, mapName)
	if err != nil {
		return MapStats{}, errors.Wrapf(err, "%s", fname)
	}
	m, err := ParseTEXTMAP(textmap)
	if err != nil {
		return MapStats{}, errors.Wrapf(err, "%s", fname)
	}
	if m.PlayerStart == nil {
		return MapStats{}, errors.Errorf("%s: map %s has no player 1 start", fname, mapName)
	}
	// writing checks every reference
	if err := WriteTEXTMAP(io.Discard, m, DEFAULT_PRECISION); err != nil {
		return MapStats{}, errors.Wrapf(err, "%s", fname)
	}
	return m.Stats(), nil
}
