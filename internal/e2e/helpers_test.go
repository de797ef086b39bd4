package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"custintel/internal/artifact"
	"custintel/internal/httpapi"
	"custintel/internal/inference"
	"custintel/internal/registry"
)

// Artifacts as the export notebooks would write them.
var fixtureArtifacts = map[string]string{
	artifact.FileChurnVariants: `{
		"models": {
			"SVM_BASE": {"model": {"kind":"linear_svc","coef":[[1,1,1]],"intercept":[0],"classes":[0,1]}, "uses_scaler": false, "variant": "base"},
			"Logistic_SMOTE": {"model": {"kind":"logistic_regression","coef":[[-0.5,1,1]],"intercept":[-1],"classes":[0,1]}, "uses_scaler": true, "variant": "smote"}
		},
		"feature_columns": ["tenure","monthly_charges","contract_monthly"],
		"numeric_columns": ["tenure","monthly_charges"],
		"scaler": {"kind":"standard_scaler","mean":[10,50],"scale":[10,20]}
	}`,
	artifact.FileForecastPlain: `{"kind":"linear_regression","coef":[2,0.5],"intercept":100,"feature_names_in":["ad_spend","store_visits"]}`,
	artifact.FileKMeansBundle: `{
		"model": {"kind":"kmeans","cluster_centers":[[0,0],[10,10],[20,0]]},
		"feature_columns": ["recency","frequency"],
		"n_features": 2
	}`,
	artifact.FileSentimentObject: `{"kind":"vader_lexicon","lexicon":{"great":3.1,"good":1.9,"terrible":-2.5,"slow":-1.2}}`,
}

// writeArtifacts creates a models directory holding the named fixtures.
func writeArtifacts(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		body, ok := fixtureArtifacts[n]
		if !ok {
			t.Fatalf("no fixture named %s", n)
		}
		if err := os.WriteFile(filepath.Join(dir, n), []byte(body), 0o644); err != nil {
			t.Fatalf("write artifact %s: %v", n, err)
		}
	}
	return dir
}

func allArtifacts() []string {
	names := make([]string, 0, len(fixtureArtifacts))
	for n := range fixtureArtifacts {
		names = append(names, n)
	}
	return names
}

// newServerForDir wires the production stack over modelsDir.
func newServerForDir(t *testing.T, modelsDir string) *httptest.Server {
	t.Helper()
	files, err := registry.LoadDir(modelsDir)
	if err != nil {
		t.Fatalf("scan artifacts: %v", err)
	}
	b := artifact.NewResolver(modelsDir, zerolog.Nop()).ResolveAll()
	svc := inference.New(b, files, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
