package render

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms3"
)

// basis maps camera space to world space.
type basis struct {
	right, up, forward ms3.Vec
}

func lookAt(pos, target ms3.Vec) basis {
	forward := ms3.Unit(ms3.Sub(target, pos))
	right := ms3.Unit(ms3.Cross(ms3.Vec{Y: 1}, forward))
	up := ms3.Unit(ms3.Cross(forward, right))
	return basis{right: right, up: up, forward: forward}
}

func (b basis) apply(v ms3.Vec) ms3.Vec {
	return ms3.Add(ms3.Add(ms3.Scale(v.X, b.right), ms3.Scale(v.Y, b.up)), ms3.Scale(v.Z, b.forward))
}

// tracer is owned by one goroutine. err holds the first failure of sdf.
type tracer struct {
	sdf    SDF
	cfg    Config
	origin ms3.Vec
	cam    basis
	err    error
}

func newTracer(sdf SDF, cfg Config) *tracer {
	origin := vec(cfg.Camera)
	return &tracer{
		sdf:    sdf,
		cfg:    cfg,
		origin: origin,
		cam:    lookAt(origin, vec(cfg.LookAt)),
	}
}

// at samples the field. Once sdf has failed it reports +Inf without calling
// it again, which ends the current ray.
func (tr *tracer) at(p ms3.Vec) float32 {
	if tr.err != nil {
		return math32.Inf(1)
	}
	d, err := tr.sdf(p)
	if err != nil {
		tr.err = err
		return math32.Inf(1)
	}
	return d
}

// pixel averages an AA x AA grid of rays through the pixel. The image is
// centered horizontally and y grows upward.
func (tr *tracer) pixel(px, py int) float32 {
	w, h := float32(tr.cfg.Width), float32(tr.cfg.Height)
	aa := tr.cfg.AA
	var col float32
	for m := range aa {
		for n := range aa {
			ox := float32(m)/float32(aa) - 0.5
			oy := float32(n)/float32(aa) - 0.5
			u := (float32(px) + (h-w)/2 + ox) / h
			v := (h - float32(py) + oy) / h
			rd := tr.cam.apply(ms3.Unit(ms3.Vec{X: u*2 - 1, Y: v*2 - 1, Z: 1}))
			col += tr.march(tr.origin, rd)
		}
	}
	return col / float32(aa*aa)
}

// march sphere-traces from ro along rd and shades the first hit. A ray that
// leaves MaxDist or runs out of steps gets the background.
func (tr *tracer) march(ro, rd ms3.Vec) float32 {
	var total float32
	for range tr.cfg.MaxSteps {
		p := ms3.Add(ro, ms3.Scale(total, rd))
		dist := tr.at(p)
		if math32.Abs(dist) < tr.cfg.Epsilon {
			return tr.shade(p, rd)
		}
		if total > tr.cfg.MaxDist {
			break
		}
		total += dist
	}
	return tr.cfg.Background
}

func (tr *tracer) shade(p, rd ms3.Vec) float32 {
	n := tr.normal(p)
	ao := tr.occlusion(p, n)
	var col float32
	for _, light := range tr.cfg.Lights {
		l := ms3.Unit(ms3.Sub(vec(light.Position), p))
		col += light.Intensity * phong(l, n, rd, tr.cfg.Material) * tr.softShadow(p, l, 0.1, 1, 2) * ao
	}
	return col
}

// normal is the central-difference gradient of the field at p.
func (tr *tracer) normal(p ms3.Vec) ms3.Vec {
	e := tr.cfg.Epsilon
	diff := func(d ms3.Vec) float32 {
		return tr.at(ms3.Add(p, d)) - tr.at(ms3.Sub(p, d))
	}
	return ms3.Unit(ms3.Vec{
		X: diff(ms3.Vec{X: e}),
		Y: diff(ms3.Vec{Y: e}),
		Z: diff(ms3.Vec{Z: e}),
	})
}

func (tr *tracer) softShadow(ro, rd ms3.Vec, mint, maxt, k float32) float32 {
	res := float32(1)
	t := mint
	for range 16 {
		h := tr.at(ms3.Add(ro, ms3.Scale(t, rd)))
		if h < tr.cfg.Epsilon {
			return 0
		}
		res = math32.Min(res, k*h/t)
		t += h
		if t > maxt {
			return res
		}
	}
	return ms1.Clamp(res, 0, 1)
}

func (tr *tracer) occlusion(p, n ms3.Vec) float32 {
	var occ float32
	w := float32(1)
	for i := range 5 {
		h := 0.01 + 0.03*float32(i)
		d := tr.at(ms3.Add(p, ms3.Scale(h, n)))
		occ += (h - d) * w
		w *= 0.95
		if occ > 0.35 {
			break
		}
	}
	return ms1.Clamp(1-3*occ, 0, 1)
}

func reflect(i, n ms3.Vec) ms3.Vec {
	return ms3.Sub(i, ms3.Scale(2*ms3.Dot(i, n), n))
}

func phong(l, n, rd ms3.Vec, m Material) float32 {
	diffuse := m.Diffuse * ms1.Clamp(ms3.Dot(n, l), 0, 1)
	specular := m.Specular * math32.Pow(ms1.Clamp(ms3.Dot(rd, reflect(l, n)), 0, 1), m.Shininess)
	return m.Ambient + diffuse + specular
}
