package batch

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/huey/internal/imaging"
	"github.com/ironsheep/huey/internal/layout"
)

// memSink keeps written variants in memory
type memSink struct {
	images map[string]image.Image
	copies map[string]string
	failOn string
}

func newMemSink() *memSink {
	return &memSink{images: map[string]image.Image{}, copies: map[string]string{}}
}

func (s *memSink) WriteImage(rel string, img image.Image) error {
	if s.failOn != "" && strings.Contains(rel, s.failOn) {
		return errors.New("disk full")
	}
	s.images[filepath.ToSlash(rel)] = img
	return nil
}

func (s *memSink) CopyFile(rel, src string) error {
	s.copies[filepath.ToSlash(rel)] = src
	return nil
}

func (s *memSink) Location(rel string) string {
	return filepath.ToSlash(rel)
}

// writeSolidPNG writes a solid-color PNG at root/rel
func writeSolidPNG(t *testing.T, root, rel string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	writeImage(t, root, rel, img)
}

func writeImage(t *testing.T, root, rel string, img image.Image) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func writeRaw(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestRunner_TreeLayout(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "Shirts/Tee/tee.png", 4, 4, color.NRGBA{255, 0, 0, 255})
	writeSolidPNG(t, in, "Pants/Jeans/jeans.png", 3, 5, color.NRGBA{0, 0, 255, 255})
	writeSolidPNG(t, in, "Hats/Cap/cap.png", 2, 2, color.NRGBA{0, 255, 0, 255})

	sink := newMemSink()
	r := &Runner{Layout: layout.Tree{}, Palette: imaging.DefaultPalette(), Sink: sink}

	report, err := r.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Sources != 2 {
		t.Errorf("Sources: got %d, want 2", report.Sources)
	}
	if report.Variants() != 20 {
		t.Errorf("Variants: got %d, want 20", report.Variants())
	}

	img, ok := sink.images["Shirts/Tee/tee_Blue/Shirt.png"]
	if !ok {
		t.Fatalf("missing Shirts/Tee/tee_Blue/Shirt.png; have %d images", len(sink.images))
	}
	if got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA); got != (color.NRGBA{22, 59, 92, 255}) {
		t.Errorf("Blue pixel: got %v, want {22 59 92 255}", got)
	}

	jeans, ok := sink.images["Pants/Jeans/jeans_Navy/Pants.png"]
	if !ok {
		t.Fatal("missing Pants/Jeans/jeans_Navy/Pants.png")
	}
	if b := jeans.Bounds(); b.Dx() != 3 || b.Dy() != 5 {
		t.Errorf("jeans variant: got %dx%d, want 3x5", b.Dx(), b.Dy())
	}

	for rel := range sink.images {
		if strings.HasPrefix(rel, "Hats/") {
			t.Errorf("unexpected output for skipped category: %s", rel)
		}
	}
}

func TestRunner_Overlay(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "Shirts/Tee/tee.png", 4, 4, color.NRGBA{255, 0, 0, 255})

	overlay := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	overlay.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
	writeImage(t, in, "Shirts/Tee/overlay.png", overlay)

	sink := newMemSink()
	cache := imaging.NewImageCache()
	r := &Runner{Layout: layout.Tree{}, Palette: imaging.DefaultPalette(), Sink: sink, Cache: cache}

	report, err := r.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Sources != 1 {
		t.Fatalf("Sources: got %d, want 1 (overlay must not be a source)", report.Sources)
	}
	if cache.Len() != 1 {
		t.Errorf("overlay cache: got %d entries, want 1", cache.Len())
	}

	img := sink.images["Shirts/Tee/tee_Green/Shirt.png"]
	if img == nil {
		t.Fatal("missing Green variant")
	}
	if got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA); got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("overlay pixel: got %v, want {1 2 3 255}", got)
	}
	if got := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA); got == (color.NRGBA{1, 2, 3, 255}) {
		t.Error("overlay leaked into transparent region")
	}
}

func TestRunner_SkipsUnreadableSource(t *testing.T) {
	in := t.TempDir()
	writeRaw(t, in, "Shirts/Tee/broken.png", "not an image")
	writeSolidPNG(t, in, "Shirts/Tee/tee.png", 2, 2, color.NRGBA{255, 0, 0, 255})

	sink := newMemSink()
	r := &Runner{Layout: layout.Tree{}, Palette: imaging.DefaultPalette(), Sink: sink}

	report, err := r.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Skipped) != 1 || !strings.HasSuffix(report.Skipped[0].Path, "broken.png") {
		t.Errorf("Skipped: got %+v, want broken.png", report.Skipped)
	}
	if report.Variants() != 10 {
		t.Errorf("Variants: got %d, want 10", report.Variants())
	}
}

func TestRunner_SkipsUnreadableOverlay(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "Shirts/Tee/tee.png", 2, 2, color.NRGBA{255, 0, 0, 255})
	writeRaw(t, in, "Shirts/Tee/overlay.png", "garbage")

	r := &Runner{Layout: layout.Tree{}, Palette: imaging.DefaultPalette(), Sink: newMemSink()}

	report, err := r.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Sources != 0 || len(report.Skipped) != 1 {
		t.Errorf("got %d sources, %d skipped; want 0, 1", report.Sources, len(report.Skipped))
	}
}

func TestRunner_WriteFailureAborts(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "Shirts/Tee/tee.png", 2, 2, color.NRGBA{255, 0, 0, 255})

	sink := newMemSink()
	sink.failOn = "_Gray"
	r := &Runner{Layout: layout.Tree{}, Palette: imaging.DefaultPalette(), Sink: sink}

	report, err := r.Run(in)
	if err == nil {
		t.Fatal("Run should fail when the sink fails")
	}
	if report == nil || report.Variants() != 2 {
		t.Errorf("expected a partial report with 2 variants, got %+v", report)
	}
}

func TestRunner_Companions(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "Shirts/Tee/tee.png", 2, 2, color.NRGBA{255, 0, 0, 255})
	writeRaw(t, in, "Shirts/Tee/Item.prefab", "prefab")

	sink := newMemSink()
	r := &Runner{
		Layout:     layout.Tree{},
		Palette:    imaging.DefaultPalette()[:2],
		Sink:       sink,
		Companions: []string{"Item.prefab", "Animations.prefab"},
	}

	if _, err := r.Run(in); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{"Shirts/Tee/tee_White/Item.prefab", "Shirts/Tee/tee_Black/Item.prefab"}
	if len(sink.copies) != len(want) {
		t.Fatalf("copies: got %v, want %v", sink.copies, want)
	}
	for _, rel := range want {
		if _, ok := sink.copies[rel]; !ok {
			t.Errorf("missing copy %s", rel)
		}
	}
}

func TestRunner_DefaultCompanions(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "Pants/Jeans/jeans.png", 2, 2, color.NRGBA{0, 0, 255, 255})
	for _, name := range DefaultCompanions() {
		writeRaw(t, in, "Pants/Jeans/"+name, name)
	}

	sink := newMemSink()
	r := &Runner{
		Layout:     layout.Tree{},
		Palette:    imaging.DefaultPalette()[:1],
		Sink:       sink,
		Companions: DefaultCompanions(),
	}

	if _, err := r.Run(in); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"Animations.prefab", "Character_Mesh_3P_Override_0.prefab", "Item.prefab"} {
		if _, ok := sink.copies["Pants/Jeans/jeans_White/"+name]; !ok {
			t.Errorf("missing copy of %s: %v", name, sink.copies)
		}
	}
}

func TestRunner_Describe(t *testing.T) {
	in := t.TempDir()
	writeSolidPNG(t, in, "tee.png", 4, 4, color.NRGBA{255, 0, 0, 255})

	r := &Runner{Layout: layout.Flat{}, Palette: imaging.DefaultPalette()[:1], Sink: newMemSink(), Describe: true}

	report, err := r.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Variants() != 1 {
		t.Fatalf("Variants: got %d, want 1", report.Variants())
	}
	if d := report.Outputs[0].Dominant; len(d) != 7 || d[0] != '#' {
		t.Errorf("Dominant: got %q, want #RRGGBB", d)
	}
}

func TestRunner_FlatLayoutToDisk(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeSolidPNG(t, in, "tee.png", 5, 3, color.NRGBA{255, 0, 0, 255})
	writeRaw(t, in, "notes.txt", "ignored")

	r := &Runner{
		Layout:     layout.Flat{},
		Palette:    imaging.DefaultPalette(),
		Sink:       NewDirSink(out),
		Companions: []string{"notes.txt"},
	}

	report, err := r.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Variants() != 10 {
		t.Fatalf("Variants: got %d, want 10", report.Variants())
	}

	for _, name := range imaging.DefaultPalette().Lowercase().Names() {
		path := filepath.Join(out, "tee_"+name+".png")
		f, err := os.Open(path)
		if err != nil {
			t.Errorf("missing %s: %v", path, err)
			continue
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("decode %s: %v", path, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
			t.Errorf("%s: got %dx%d, want 5x3", path, b.Dx(), b.Dy())
		}
	}

	if _, err := os.Stat(filepath.Join(out, "notes.txt")); !os.IsNotExist(err) {
		t.Error("flat layout should not copy companions")
	}
}

func TestRunner_RequiresLayoutAndSink(t *testing.T) {
	r := &Runner{Palette: imaging.DefaultPalette()}
	if _, err := r.Run(t.TempDir()); err == nil {
		t.Error("Run should fail without a layout and sink")
	}
}

func TestRunner_MissingInput(t *testing.T) {
	r := &Runner{Layout: layout.Tree{}, Palette: imaging.DefaultPalette(), Sink: newMemSink()}
	if _, err := r.Run(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Run should fail for a missing input folder")
	}
}
