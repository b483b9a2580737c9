/*
This is a demo command that wires a scene, a log-only uploader, and a
demo pack-and-trace pass together, in place of the windowed testbed this
engine's GPU sibling runs - "create a window and render" becomes "build a
scene and pack it".
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima/engine"
	"github.com/spaghettifunk/anima/engine/atlas"
	"github.com/spaghettifunk/anima/engine/core"
	enginemath "github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
	"github.com/spaghettifunk/anima/engine/trace"
)

// logUploader is a no-op Uploader that just logs what it would have shipped
// to the GPU; used by this demo since no render collaborator is wired here.
type logUploader struct{}

func (logUploader) UploadTextureTable(t []scene.PackedTexture)       { core.LogDebug("upload: %d textures", len(t)) }
func (logUploader) UploadMaterialTable(m []scene.PackedMaterial)     { core.LogDebug("upload: %d materials", len(m)) }
func (logUploader) UploadShapeTable(s []scene.PackedShape)           { core.LogDebug("upload: %d shapes", len(s)) }
func (logUploader) UploadShapeNodeTable(n []scene.PackedShapeNode)   { core.LogDebug("upload: %d shape nodes", len(n)) }
func (logUploader) UploadMeshFaces(f []scene.PackedMeshFace)         { core.LogDebug("upload: %d mesh faces", len(f)) }
func (logUploader) UploadMeshFaceExtras(e []scene.PackedMeshVertex)  { core.LogDebug("upload: %d mesh vertex extras", len(e)) }
func (logUploader) UploadMeshNodes(n []scene.PackedMeshNode)         { core.LogDebug("upload: %d mesh BVH nodes", len(n)) }
func (logUploader) UploadGlobals(g scene.PackedSceneGlobals)         { core.LogDebug("upload: globals, shapeCount=%d", g.ShapeCount) }
func (logUploader) UploadAtlasImage(pageIndex int, page *atlas.Page) { core.LogDebug("upload: atlas page %d (%dx%d)", pageIndex, page.Size, page.Size) }

func buildDemoScene(cfg *core.SceneConfig) *scene.Scene {
	s := scene.New(cfg)
	s.CreateCamera("MainCamera", nil)
	s.CreatePlane("Ground", nil, 0)

	sphere := s.CreateSphere("Sphere", nil, 0)
	sphere.Transform.SetPosition(enginemath.Vec3{X: 0, Y: 0, Z: 1})
	sphere.Transform.SetScale(enginemath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	return s
}

func main() {
	cfg, err := core.LoadSceneConfig("scene.toml")
	if err != nil {
		panic(err)
	}

	s := buildDemoScene(cfg)

	e, err := engine.New(s, logUploader{})
	if err != nil {
		panic(err)
	}
	if err := e.Initialize(context.Background(), cfg); err != nil {
		panic(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		_ = e.Shutdown()
		os.Exit(0)
	}()

	if _, err := e.Run(cfg); err != nil {
		panic(err)
	}

	ray := enginemath.Ray{Origin: enginemath.Vec3{X: 0, Y: -5, Z: 1}, Vector: enginemath.Vec3{X: 0, Y: 1, Z: 0}}
	if hit, ok := trace.Trace(s, ray); ok {
		core.LogInfo("demo ray hit shape %d (type %d) at t=%.3f", hit.ShapeIndex, hit.ShapeType, hit.Time)
	} else {
		core.LogInfo("demo ray missed")
	}

	_ = e.Shutdown()
}
