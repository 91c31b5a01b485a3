package e2e

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"pixeld/internal/manager"
	"pixeld/internal/raster"
	"pixeld/pkg/types"
)

func decodePNG(t *testing.T, body []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("response is not a PNG: %v", err)
	}
	return img
}

// TestE2E_AllModelsPreserveSize posts every supported format to every
// implemented model and checks the PNG comes back at the input size.
func TestE2E_AllModelsPreserveSize(t *testing.T) {
	srv, mgr := newServer(t)
	for _, model := range []string{"denoising", "inpainting", "superresolution"} {
		for _, format := range []string{"jpeg", "png", "bmp"} {
			resp, body := httpPostImage(t, srv.URL+"/process-image/"+model, part{"image", encode(t, format, noisy(37, 23))})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("%s/%s: status=%d body=%s", model, format, resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
				t.Fatalf("%s/%s: content-type=%s", model, format, ct)
			}
			out := decodePNG(t, body)
			if out.Bounds().Dx() != 37 || out.Bounds().Dy() != 23 {
				t.Fatalf("%s/%s: size %v", model, format, out.Bounds())
			}
		}
	}
	st := mgr.Status()
	if st.ProcessedTotal != 9 || st.FailedTotal != 0 {
		t.Fatalf("unexpected totals: %+v", st)
	}
}

func TestE2E_DenoisingReturnsGray(t *testing.T) {
	srv, _ := newServer(t)
	resp, body := httpPostImage(t, srv.URL+"/process-image/denoising", part{"image", encode(t, "png", noisy(16, 16))})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if mode := raster.ModeOf(decodePNG(t, body)); mode != raster.ModeGray {
		t.Fatalf("mode=%s", mode)
	}
}

func TestE2E_InpaintingWithMask(t *testing.T) {
	srv, _ := newServer(t)
	mask := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	resp, body := httpPostImage(t, srv.URL+"/process-image/inpainting",
		part{"image", encode(t, "png", noisy(32, 24))},
		part{"mask", encode(t, "png", mask)},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	out := decodePNG(t, body)
	if out.Bounds().Dx() != 32 || out.Bounds().Dy() != 24 {
		t.Fatalf("size %v", out.Bounds())
	}
	if _, _, _, a := out.At(16, 12).RGBA(); a != 0 {
		t.Fatalf("full mask should erase pixels, alpha=%d", a)
	}
}

func TestE2E_ErrorStatuses(t *testing.T) {
	srv, _ := newServer(t)
	img := encode(t, "png", noisy(8, 8))
	cases := []struct {
		name   string
		path   string
		parts  []part
		status int
		msg    string
	}{
		{"invalid type", "/process-image/upscale", []part{{"image", img}}, http.StatusBadRequest, "Invalid model type"},
		{"no image", "/process-image/denoising", nil, http.StatusBadRequest, "No image file provided"},
		{"gif", "/process-image/denoising", []part{{"image", encode(t, "gif", noisy(8, 8))}}, http.StatusBadRequest, "Unsupported image format. Please use JPEG, PNG, or BMP"},
		{"text", "/process-image/superresolution", []part{{"image", []byte("hello")}}, http.StatusBadRequest, "Invalid image file"},
		{"bad mask", "/process-image/inpainting", []part{{"image", img}, {"mask", []byte("nope")}}, http.StatusBadRequest, "Invalid mask: Invalid image file"},
		{"divisor too big", "/process-image/denoising?divisor=64", []part{{"image", img}}, http.StatusBadRequest, "Invalid divisor"},
	}
	for _, tc := range cases {
		resp, body := httpPostImage(t, srv.URL+tc.path, tc.parts...)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: status=%d want %d body=%s", tc.name, resp.StatusCode, tc.status, body)
		}
		var er types.ErrorResponse
		if err := json.Unmarshal(body, &er); err != nil {
			t.Fatalf("%s: json: %v body=%s", tc.name, err, body)
		}
		if er.Code != tc.status || !strings.Contains(er.Error, tc.msg) {
			t.Fatalf("%s: unexpected error body %+v", tc.name, er)
		}
	}
}

func TestE2E_MRIFailsToLoad(t *testing.T) {
	srv, _ := newServer(t)
	resp, body := httpPostImage(t, srv.URL+"/process-image/mri", part{"image", encode(t, "png", noisy(8, 8))})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(string(body), "Error during processing: Failed to load mri model") || !strings.Contains(string(body), "Traceback: ") {
		t.Fatalf("body=%s", body)
	}
}

func TestE2E_EventsPublished(t *testing.T) {
	pub := manager.NewMemoryPublisher()
	srv, _ := newServerWithConfig(t, manager.ManagerConfig{Publisher: pub})
	resp, _ := httpPostImage(t, srv.URL+"/process-image/superresolution", part{"image", encode(t, "jpeg", noisy(10, 10))})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	names := pub.Names()
	if len(names) != 2 || names[0] != manager.EventProcessStart || names[1] != manager.EventProcessEnd {
		t.Fatalf("events=%v", names)
	}
}

func TestE2E_ModelsAndStatus(t *testing.T) {
	srv, _ := newServer(t)
	resp, body := httpGet(t, srv.URL+"/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var mr types.ModelsResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(mr.Models) != 4 {
		t.Fatalf("models=%+v", mr.Models)
	}

	httpPostImage(t, srv.URL+"/process-image/denoising", part{"image", encode(t, "png", noisy(4, 4))})
	resp, body = httpGet(t, srv.URL+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.State != "ready" || st.ProcessedTotal != 1 || st.ServerTimeUnix == 0 {
		t.Fatalf("unexpected status: %+v", st)
	}

	for _, p := range []string{"/healthz", "/readyz", "/metrics"} {
		if resp, _ := httpGet(t, srv.URL+p); resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", p, resp.StatusCode)
		}
	}
}
