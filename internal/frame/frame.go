// Package frame drives one viewer frame: it collects a finished scene load,
// advances camera motion and the test cube, and runs the hover pass.
package frame

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"

	"roomview/internal/camera"
	"roomview/internal/gltf"
	"roomview/internal/hover"
	"roomview/internal/input"
	"roomview/internal/interact"
	"roomview/internal/scenegraph"
)

// Logger is the log sink the driver and its parts write to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Options configures a Driver.
type Options struct {
	Tags      []string
	Highlight scenegraph.Color
	Damping   float32

	// Bob moves the camera height by sin(elapsed*BobFrequency)*BobAmplitude
	// every frame.
	Bob          bool
	BobFrequency float32
	BobAmplitude float32

	// Resolve, when set, maps the reference given to Load to a local model
	// path before loading. It runs on the loader goroutine.
	Resolve func(ctx context.Context, ref string) (string, error)

	// Cube, when set, is spun by CubeSpin radians per frame around x and y.
	// It is drawn but never interactive.
	Cube     *scenegraph.Node
	CubeSpin float32
}

// DefaultOptions returns the reference viewer behavior without a test cube.
func DefaultOptions() Options {
	return Options{
		Tags:         interact.DefaultTags,
		Highlight:    hover.DefaultHighlight,
		Damping:      camera.DefaultDamping,
		Bob:          true,
		BobFrequency: 0.2,
		BobAmplitude: 0.0005,
		CubeSpin:     0.01,
	}
}

// NewTestCube returns a size×size×size cube of color c at pos.
func NewTestCube(size float32, c scenegraph.Color, pos mgl32.Vec3) *scenegraph.Node {
	n := scenegraph.NewMeshNode("test_cube", scenegraph.NewBoxMesh(size, size, size), scenegraph.NewMaterial("test_cube", c))
	n.SetPosition(pos[0], pos[1], pos[2])
	return n
}

// Driver owns the state shared by input handling and the per-frame update.
// Everything except Pointer must be used from the frame goroutine only.
type Driver struct {
	Pointer *input.Pointer
	Camera  *camera.Camera
	Orbit   *camera.Orbit

	opts       Options
	log        Logger
	classifier *interact.Classifier
	resolver   *hover.Resolver

	pending <-chan gltf.Result
	cancel  context.CancelFunc
	root    *scenegraph.Node
	loadErr error

	elapsed   float32
	cubeAngle float32
	last      hover.Effects
}

// New returns a driver rendering through cam. log may be nil.
func New(cam *camera.Camera, opts Options, log Logger) *Driver {
	d := &Driver{
		Pointer: &input.Pointer{},
		Camera:  cam,
		Orbit:   camera.NewOrbit(opts.Damping),
		opts:    opts,
		log:     log,
	}
	var classLog interact.Logger
	var hoverLog hover.Logger
	if log != nil {
		classLog, hoverLog = log, log
	}
	d.classifier = interact.NewClassifier(opts.Tags, classLog)
	d.resolver = hover.NewResolver(cam, opts.Highlight, hoverLog)
	return d
}

// Load starts loading ref in the background. The scene becomes
// interactive on the first Tick after the load finishes. A load already in
// flight is abandoned.
func (d *Driver) Load(ctx context.Context, ref string) {
	if d.cancel != nil {
		d.cancel()
	}
	ctx, d.cancel = context.WithCancel(ctx)
	if d.opts.Resolve == nil {
		d.pending = gltf.LoadAsync(ctx, ref)
		return
	}
	out := make(chan gltf.Result, 1)
	go func(resolve func(context.Context, string) (string, error)) {
		defer close(out)
		path, err := resolve(ctx, ref)
		if err != nil {
			out <- gltf.Result{Path: ref, Err: err}
			return
		}
		res, ok := <-gltf.LoadAsync(ctx, path)
		if ok {
			out <- res
		}
	}(d.opts.Resolve)
	d.pending = out
}

// Close abandons any load in flight.
func (d *Driver) Close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.pending = nil
}

// Loading reports whether a load is still pending.
func (d *Driver) Loading() bool { return d.pending != nil }

// Err returns the error of the last failed load.
func (d *Driver) Err() error { return d.loadErr }

// Attach makes root the current scene and classifies it.
func (d *Driver) Attach(root *scenegraph.Node) {
	d.root = root
	d.loadErr = nil
	d.resolver.SetEligible(d.classifier.Classify(root))
}

// Scene returns the loaded scene root, or nil before a successful load.
func (d *Driver) Scene() *scenegraph.Node { return d.root }

// Cube returns the test cube, which may be nil.
func (d *Driver) Cube() *scenegraph.Node { return d.opts.Cube }

// Eligible returns the interactive nodes of the current scene.
func (d *Driver) Eligible() *interact.Set { return d.resolver.Eligible() }

// Last returns the effects of the most recent Tick.
func (d *Driver) Last() hover.Effects { return d.last }

// Tick advances one frame of dt seconds and returns what the host must
// present: the hit list and the cursor to show.
func (d *Driver) Tick(dt float32) hover.Effects {
	d.poll()
	d.elapsed += dt

	if cube := d.opts.Cube; cube != nil {
		d.cubeAngle += d.opts.CubeSpin
		cube.SetEuler(d.cubeAngle, d.cubeAngle, 0)
	}
	if d.opts.Bob {
		d.Camera.Bob(d.elapsed, d.opts.BobFrequency, d.opts.BobAmplitude)
	}
	d.Orbit.Update(d.Camera)

	d.last = d.resolver.Update(dt, d.Pointer)
	return d.last
}

// poll collects a finished load without blocking.
func (d *Driver) poll() {
	if d.pending == nil {
		return
	}
	select {
	case res, ok := <-d.pending:
		d.pending = nil
		if !ok {
			return
		}
		if res.Err != nil {
			d.loadErr = res.Err
			if d.log != nil {
				d.log.Errorf("Error loading GLB: %v", res.Err)
			}
			return
		}
		if d.log != nil {
			d.log.Debugf("loaded %s: %d nodes", res.Path, res.Root.Count())
		}
		d.Attach(res.Root)
	default:
	}
}
