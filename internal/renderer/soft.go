package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/kjkrol/gokg/pkg/geometry"
	"github.com/kjkrol/quadcolor/internal/platform"
	"github.com/kjkrol/quadcolor/pkg/gfx"
)

// SoftDevice is a gfx.Device that rasterizes into a platform.Surface.
// It does not execute GLSL: a compile checks the structure of the source,
// and the fragment output is taken from the vec4 uniform the fragment
// stage assigns to its color output.
type SoftDevice struct {
	surface platform.Surface

	nextID   uint32
	shaders  map[shaderID]*softShader
	programs map[programID]*softProgram
	buffers  map[bufferID][]float32

	current     programID
	arrayBuffer bufferID
	attribs     map[int]*softAttrib
	clear       gfx.Color

	stats Stats
}

// Stats counts device calls that matter to tests.
type Stats struct {
	Compiles int
	Links    int
	Uses     int
	Uploads  int
	Clears   int
	Draws    int
	// Invalid counts calls a real driver would reject with a GL error.
	Invalid int
}

type (
	shaderID  uint32
	programID uint32
	bufferID  uint32
)

type uniformLoc struct {
	program programID
	name    string
}

type softShader struct {
	stage    gfx.Stage
	src      string
	compiled bool
	log      string
	decl     declarations
}

type softProgram struct {
	attached []shaderID
	linked   bool
	log      string
	attribs  map[string]int
	uniforms map[string]gfx.Color
	colorSrc string
	// position is the location of the attribute written to gl_Position,
	// or -1.
	position int
}

type softAttrib struct {
	buffer  bufferID
	size    int
	enabled bool
}

type declarations struct {
	attribs  []string
	uniforms []string
	varyings []string
	colorSrc string
	position string
	refs     string
}

func NewSoftDevice(surface platform.Surface) *SoftDevice {
	return &SoftDevice{
		surface:  surface,
		shaders:  make(map[shaderID]*softShader),
		programs: make(map[programID]*softProgram),
		buffers:  make(map[bufferID][]float32),
		attribs:  make(map[int]*softAttrib),
	}
}

func (d *SoftDevice) Stats() Stats       { return d.stats }
func (d *SoftDevice) Frame() *image.RGBA { return d.surface.RGBA() }

// BufferContents returns a copy of the data uploaded to buffer.
func (d *SoftDevice) BufferContents(buffer gfx.Handle) []float32 {
	id, ok := buffer.(bufferID)
	if !ok {
		return nil
	}
	return append([]float32(nil), d.buffers[id]...)
}

// Buffers returns the number of live buffers.
func (d *SoftDevice) Buffers() int { return len(d.buffers) }

// Live returns the number of live shaders and programs.
func (d *SoftDevice) Live() (shaders, programs int) {
	return len(d.shaders), len(d.programs)
}

func (d *SoftDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *SoftDevice) CreateShader(stage gfx.Stage) gfx.Handle {
	id := shaderID(d.id())
	d.shaders[id] = &softShader{stage: stage}
	return id
}

func (d *SoftDevice) shader(h gfx.Handle) *softShader {
	id, ok := h.(shaderID)
	if !ok {
		d.stats.Invalid++
		return nil
	}
	s := d.shaders[id]
	if s == nil {
		d.stats.Invalid++
	}
	return s
}

func (d *SoftDevice) ShaderSource(h gfx.Handle, src string) {
	if s := d.shader(h); s != nil {
		s.src = src
	}
}

func (d *SoftDevice) CompileShader(h gfx.Handle) {
	s := d.shader(h)
	if s == nil {
		return
	}
	d.stats.Compiles++
	s.decl, s.log = parseShader(s.stage, s.src)
	s.compiled = s.log == ""
}

func (d *SoftDevice) ShaderCompiled(h gfx.Handle) bool {
	s := d.shader(h)
	return s != nil && s.compiled
}

func (d *SoftDevice) ShaderInfoLog(h gfx.Handle) string {
	if s := d.shader(h); s != nil {
		return s.log
	}
	return ""
}

func (d *SoftDevice) DeleteShader(h gfx.Handle) {
	if id, ok := h.(shaderID); ok {
		delete(d.shaders, id)
	}
}

func (d *SoftDevice) CreateProgram() gfx.Handle {
	id := programID(d.id())
	d.programs[id] = &softProgram{}
	return id
}

func (d *SoftDevice) program(h gfx.Handle) *softProgram {
	id, ok := h.(programID)
	if !ok {
		d.stats.Invalid++
		return nil
	}
	p := d.programs[id]
	if p == nil {
		d.stats.Invalid++
	}
	return p
}

func (d *SoftDevice) AttachShader(ph, sh gfx.Handle) {
	p := d.program(ph)
	if p == nil || d.shader(sh) == nil {
		return
	}
	p.attached = append(p.attached, sh.(shaderID))
}

func (d *SoftDevice) DetachShader(ph, sh gfx.Handle) {
	p := d.program(ph)
	id, ok := sh.(shaderID)
	if p == nil || !ok {
		return
	}
	for i, a := range p.attached {
		if a == id {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
	d.stats.Invalid++
}

func (d *SoftDevice) LinkProgram(ph gfx.Handle) {
	p := d.program(ph)
	if p == nil {
		return
	}
	d.stats.Links++
	p.linked = false
	p.log = ""

	var vs, fs *softShader
	for _, id := range p.attached {
		s := d.shaders[id]
		switch {
		case s == nil:
		case s.stage == gfx.VertexStage && vs == nil:
			vs = s
		case s.stage == gfx.FragmentStage && fs == nil:
			fs = s
		default:
			p.log = fmt.Sprintf("ERROR: more than one %s shader attached", s.stage)
			return
		}
	}
	switch {
	case vs == nil:
		p.log = "ERROR: Missing vertex shader"
		return
	case fs == nil:
		p.log = "ERROR: Missing fragment shader"
		return
	case !vs.compiled || !fs.compiled:
		p.log = "ERROR: Attached shader is not compiled"
		return
	}

	for _, name := range fs.decl.varyings {
		if !slices.Contains(vs.decl.varyings, name) {
			p.log = fmt.Sprintf("ERROR: Varying %s not written by vertex shader", name)
			return
		}
	}

	p.attribs = make(map[string]int)
	for _, name := range vs.decl.attribs {
		if active(vs.decl.refs, name) {
			p.attribs[name] = len(p.attribs)
		}
	}
	p.uniforms = make(map[string]gfx.Color)
	for _, decl := range []declarations{vs.decl, fs.decl} {
		for _, name := range decl.uniforms {
			if active(decl.refs, name) {
				p.uniforms[name] = gfx.Color{}
			}
		}
	}
	p.colorSrc = fs.decl.colorSrc
	p.position = -1
	if loc, ok := p.attribs[vs.decl.position]; ok {
		p.position = loc
	}
	p.linked = true
}

func (d *SoftDevice) ProgramLinked(ph gfx.Handle) bool {
	p := d.program(ph)
	return p != nil && p.linked
}

func (d *SoftDevice) ProgramInfoLog(ph gfx.Handle) string {
	if p := d.program(ph); p != nil {
		return p.log
	}
	return ""
}

func (d *SoftDevice) DeleteProgram(ph gfx.Handle) {
	id, ok := ph.(programID)
	if !ok {
		return
	}
	delete(d.programs, id)
	if d.current == id {
		d.current = 0
	}
}

func (d *SoftDevice) UseProgram(ph gfx.Handle) {
	p := d.program(ph)
	if p == nil || !p.linked {
		d.stats.Invalid++
		return
	}
	d.stats.Uses++
	d.current = ph.(programID)
}

func (d *SoftDevice) AttribLocation(ph gfx.Handle, name string) int {
	p := d.program(ph)
	if p == nil || !p.linked {
		return -1
	}
	loc, ok := p.attribs[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *SoftDevice) UniformLocation(ph gfx.Handle, name string) gfx.Handle {
	p := d.program(ph)
	if p == nil || !p.linked {
		return nil
	}
	if _, ok := p.uniforms[name]; !ok {
		return nil
	}
	return uniformLoc{program: ph.(programID), name: name}
}

func (d *SoftDevice) CreateBuffer() gfx.Handle {
	id := bufferID(d.id())
	d.buffers[id] = nil
	return id
}

func (d *SoftDevice) StaticBufferData(h gfx.Handle, data []float32) {
	id, ok := h.(bufferID)
	if _, live := d.buffers[id]; !ok || !live {
		d.stats.Invalid++
		return
	}
	d.stats.Uploads++
	d.arrayBuffer = id
	d.buffers[id] = append([]float32(nil), data...)
}

func (d *SoftDevice) VertexAttribPointer(index, size int) {
	if d.arrayBuffer == 0 || size < 2 || size > 4 {
		d.stats.Invalid++
		return
	}
	a := d.attrib(index)
	a.buffer = d.arrayBuffer
	a.size = size
}

func (d *SoftDevice) EnableVertexAttribArray(index int) {
	d.attrib(index).enabled = true
}

func (d *SoftDevice) attrib(index int) *softAttrib {
	a := d.attribs[index]
	if a == nil {
		a = &softAttrib{}
		d.attribs[index] = a
	}
	return a
}

func (d *SoftDevice) DeleteBuffer(h gfx.Handle) {
	id, ok := h.(bufferID)
	if !ok {
		return
	}
	delete(d.buffers, id)
	if d.arrayBuffer == id {
		d.arrayBuffer = 0
	}
}

func (d *SoftDevice) Uniform4f(h gfx.Handle, c gfx.Color) {
	loc, ok := h.(uniformLoc)
	if !ok || loc.program != d.current || d.current == 0 {
		d.stats.Invalid++
		return
	}
	d.programs[loc.program].uniforms[loc.name] = c
}

func (d *SoftDevice) ClearColor(c gfx.Color) {
	d.clear = c
}

func (d *SoftDevice) Clear() {
	d.stats.Clears++
	img := d.surface.RGBA()
	draw.Draw(img, img.Bounds(), image.NewUniform(gfx.ToRGBA(d.clear)), image.Point{}, draw.Src)
}

func (d *SoftDevice) DrawTriangleStrip(first, count int) {
	p := d.programs[d.current]
	if p == nil || !p.linked {
		d.stats.Invalid++
		return
	}
	a := d.attribs[p.position]
	if p.position < 0 || a == nil || !a.enabled {
		d.stats.Invalid++
		return
	}
	data := d.buffers[a.buffer]
	if first < 0 || count < 0 || (first+count)*a.size > len(data) {
		d.stats.Invalid++
		return
	}
	d.stats.Draws++

	verts := make([][2]float64, count)
	img := d.surface.RGBA()
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	for i := range verts {
		base := (first + i) * a.size
		x, y := float64(data[base]), float64(data[base+1])
		verts[i] = [2]float64{(x + 1) / 2 * w, (1 - y) / 2 * h}
	}

	fill := gfx.ToRGBA(p.uniforms[p.colorSrc])
	for i := 0; i+2 < len(verts); i++ {
		rasterizeTriangle(img, verts[i], verts[i+1], verts[i+2], fill)
	}
}

func rasterizeTriangle(img *image.RGBA, a, b, c [2]float64, fill color.Color) {
	area := edge(a, b, c)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
	}

	bounds := img.Bounds()
	plane := geometry.NewBoundedPlane(bounds.Dx(), bounds.Dy())
	lo := geometry.Vec[int]{
		X: int(math.Floor(min(a[0], b[0], c[0]))),
		Y: int(math.Floor(min(a[1], b[1], c[1]))),
	}
	hi := geometry.Vec[int]{
		X: int(math.Ceil(max(a[0], b[0], c[0]))),
		Y: int(math.Ceil(max(a[1], b[1], c[1]))),
	}
	plane.Normalize(&lo)
	plane.Normalize(&hi)

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			p := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			if edge(a, b, p) >= 0 && edge(b, c, p) >= 0 && edge(c, a, p) >= 0 {
				img.Set(bounds.Min.X+x, bounds.Min.Y+y, fill)
			}
		}
	}
}

func edge(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

var (
	commentRe   = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	mainRe      = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)\s*\{`)
	attribRe    = regexp.MustCompile(`(?:layout\s*\([^)]*\)\s*)?\b(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?(?:vec[234]|float)\s+(\w+)\s*;`)
	uniformRe   = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?vec4\s+(\w+)\s*;`)
	varyingRe   = regexp.MustCompile(`\bvarying\s+(?:(?:lowp|mediump|highp)\s+)?(?:vec[234]|float)\s+(\w+)\s*;`)
	fragOutRe   = regexp.MustCompile(`\bout\s+(?:(?:lowp|mediump|highp)\s+)?vec4\s+(\w+)\s*;`)
	positionRe  = regexp.MustCompile(`\bgl_Position\s*=\s*([^;]+);`)
	identRe     = regexp.MustCompile(`^\w+$`)
	versionLine = regexp.MustCompile(`(?m)^\s*#.*$`)
)

// parseShader checks src the way a driver front end would, stopping at
// the first problem. It returns an empty log on success.
func parseShader(stage gfx.Stage, src string) (declarations, string) {
	var decl declarations
	body := commentRe.ReplaceAllString(src, "")
	body = versionLine.ReplaceAllString(body, "")
	if strings.TrimSpace(body) == "" {
		return decl, "ERROR: 0:1: '' : syntax error: empty source"
	}
	if line, ok := balanced(body); !ok {
		return decl, fmt.Sprintf("ERROR: 0:%d: '' : syntax error: unbalanced brackets", line)
	}
	if !mainRe.MatchString(body) {
		return decl, "ERROR: 0:1: 'main' : function not defined"
	}

	for _, m := range attribRe.FindAllStringSubmatch(body, -1) {
		decl.attribs = append(decl.attribs, m[1])
	}
	for _, m := range uniformRe.FindAllStringSubmatch(body, -1) {
		decl.uniforms = append(decl.uniforms, m[1])
	}
	for _, m := range varyingRe.FindAllStringSubmatch(body, -1) {
		decl.varyings = append(decl.varyings, m[1])
	}
	// References are counted outside of declarations.
	refs := attribRe.ReplaceAllString(body, "")
	refs = uniformRe.ReplaceAllString(refs, "")
	decl.refs = refs

	switch stage {
	case gfx.VertexStage:
		m := positionRe.FindStringSubmatch(body)
		if m == nil {
			return decl, "ERROR: 0:1: 'gl_Position' : undeclared output"
		}
		for _, name := range decl.attribs {
			if active(m[1], name) {
				decl.position = name
				break
			}
		}
	case gfx.FragmentStage:
		out := "gl_FragColor"
		if m := fragOutRe.FindStringSubmatch(body); m != nil {
			out = m[1]
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(out) + `\s*=\s*([^;]+);`)
		m := re.FindStringSubmatch(body)
		if m == nil {
			return decl, fmt.Sprintf("ERROR: 0:1: '%s' : fragment output never written", out)
		}
		rhs := strings.TrimSpace(m[1])
		if !identRe.MatchString(rhs) {
			return decl, fmt.Sprintf("ERROR: 0:1: '%s' : unsupported fragment expression", rhs)
		}
		if !slices.Contains(decl.uniforms, rhs) {
			return decl, fmt.Sprintf("ERROR: 0:1: '%s' : undeclared identifier", rhs)
		}
		decl.colorSrc = rhs
	}
	return decl, ""
}

func balanced(src string) (int, bool) {
	var stack []rune
	line := 1
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return line, false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return line, len(stack) == 0
}

func active(refs, name string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`).MatchString(refs)
}
