package deploy

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-agent/internal/config"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func tarNames(t *testing.T, r io.Reader) []string {
	t.Helper()
	gz, err := gzip.NewReader(r)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	return names
}

func TestBundle(t *testing.T) {
	root := writeTree(t, map[string]string{
		"go.mod":                           "module example\n",
		"cmd/weather-agent/main.go":        "package main\n",
		"internal/weather/service.go":      "package weather\n",
		"internal/weather/service_test.go": "package weather\n",
		"internal/.git/HEAD":               "ref\n",
		"internal/.env":                    "WEATHERBIT_API_KEY=secret\n",
		"README.md":                        "not packaged\n",
	})

	var buf bytes.Buffer
	require.NoError(t, Bundle(&buf, root, []string{"go.mod", "go.sum", "cmd/weather-agent", "internal", "internal/weather"}))

	assert.Equal(t, []string{
		"cmd/weather-agent/main.go",
		"go.mod",
		"internal/weather/service.go",
	}, tarNames(t, &buf))
}

func TestBundleEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Bundle(&buf, t.TempDir(), []string{"missing"})
	assert.Error(t, err)
}

func TestBucketName(t *testing.T) {
	assert.Equal(t, "staging", bucketName("gs://staging"))
	assert.Equal(t, "staging", bucketName("gs://staging/prefix"))
	assert.Equal(t, "staging", bucketName("staging"))
}

func TestEnvVarsSorted(t *testing.T) {
	vars := envVars(map[string]string{"B": "2", "A": "1"})
	require.Len(t, vars, 2)
	assert.Equal(t, "A", vars[0].GetName())
	assert.Equal(t, "1", vars[0].GetValue())
	assert.Equal(t, "B", vars[1].GetName())
}

type fakeStager struct {
	bucket, object string
	names          []string
	err            error
}

func (f *fakeStager) Stage(ctx context.Context, bucket, object string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.bucket, f.object = bucket, object
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		f.names = append(f.names, hdr.Name)
	}
	return "gs://" + bucketName(bucket) + "/" + object, nil
}

type fakeCreator struct {
	spec EngineSpec
	err  error
}

func (f *fakeCreator) Create(ctx context.Context, spec EngineSpec) (string, error) {
	f.spec = spec
	if f.err != nil {
		return "", f.err
	}
	return "projects/p/locations/us-central1/reasoningEngines/123", nil
}

func deployConfig() *config.DeployConfig {
	return &config.DeployConfig{
		Project:          "p",
		Location:         "us-central1",
		StagingBucket:    "gs://staging",
		UseVertexAI:      "TRUE",
		WeatherbitAPIKey: "wb-key",
		DisplayName:      "weather-agent",
		ExtraPackages:    []string{"internal"},
	}
}

func TestDeployerRun(t *testing.T) {
	root := writeTree(t, map[string]string{"internal/agent/agent.go": "package agent\n"})
	stager := &fakeStager{}
	creator := &fakeCreator{}

	d := New(deployConfig(), root, stager, creator)
	d.newID = func() string { return "fixed" }

	name, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "projects/p/locations/us-central1/reasoningEngines/123", name)

	assert.Equal(t, "gs://staging", stager.bucket)
	assert.Equal(t, "agent_engine/weather-agent/fixed.tar.gz", stager.object)
	assert.Equal(t, []string{"internal/agent/agent.go"}, stager.names)

	assert.Equal(t, "projects/p/locations/us-central1", creator.spec.Parent)
	assert.Equal(t, "weather-agent", creator.spec.DisplayName)
	assert.Equal(t, "gs://staging/agent_engine/weather-agent/fixed.tar.gz", creator.spec.BundleURI)
	assert.Equal(t, map[string]string{
		"GOOGLE_GENAI_USE_VERTEXAI": "TRUE",
		"WEATHERBIT_API_KEY":        "wb-key",
		"GOOGLE_CLOUD_PROJECT_ID":   "p",
		"GOOGLE_CLOUD_REGION":       "us-central1",
	}, creator.spec.Env)
}

func TestDeployerOmitsEmptyAPIKey(t *testing.T) {
	root := writeTree(t, map[string]string{"internal/agent/agent.go": "package agent\n"})
	cfg := deployConfig()
	cfg.WeatherbitAPIKey = ""
	creator := &fakeCreator{}

	_, err := New(cfg, root, &fakeStager{}, creator).Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, creator.spec.Env, "WEATHERBIT_API_KEY")
}

func TestDeployerPropagatesErrors(t *testing.T) {
	root := writeTree(t, map[string]string{"internal/agent/agent.go": "package agent\n"})

	_, err := New(deployConfig(), root, &fakeStager{err: errors.New("denied")}, &fakeCreator{}).Run(context.Background())
	assert.ErrorContains(t, err, "stage bundle: denied")

	_, err = New(deployConfig(), root, &fakeStager{}, &fakeCreator{err: errors.New("quota")}).Run(context.Background())
	assert.ErrorContains(t, err, "quota")
}
