package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"flavorcheck/internal/config"
	"flavorcheck/internal/testsupport"
)

type cliTestEnv struct {
	server     *testsupport.KalturaServer
	cfg        *config.Config
	configPath string
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
	for _, key := range []string{config.EnvAdminSecret, config.EnvPartnerID, config.EnvAdminUserID, config.EnvServiceURL} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func setupCLITestEnv(t *testing.T, fixture testsupport.KalturaFixture, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()
	isolateEnv(t)
	server := testsupport.NewKalturaServer(t, fixture)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithServiceURL(server.URL)}, opts...)...)
	return &cliTestEnv{
		server:     server,
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args, configPath)
}

func runCLIContext(t *testing.T, ctx context.Context, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

// scenarioFixture is an entry with a source, two near-duplicate READY rungs,
// one skipped 4K target, one failed SD target and one enabled target that
// never produced a flavor.
func scenarioFixture() testsupport.KalturaFixture {
	return testsupport.KalturaFixture{
		Entries: map[string]map[string]any{
			testsupport.TestEntryID: {
				"id":                  testsupport.TestEntryID,
				"name":                "Fixture Lecture",
				"partnerId":           testsupport.TestPartnerID,
				"userId":              "lecturer@example.com",
				"type":                1,
				"status":              2,
				"sourceType":          "1",
				"duration":            95,
				"msDuration":          95000,
				"createdAt":           1700000000,
				"updatedAt":           1700000600,
				"width":               1920,
				"height":              1080,
				"conversionProfileId": 7,
			},
		},
		Flavors: map[string][]map[string]any{
			testsupport.TestEntryID: {
				{"id": "0_src", "flavorParamsId": 0, "status": 2, "bitrate": 5000, "width": 1920, "height": 1080, "frameRate": 25, "size": 60000, "isOriginal": true, "videoCodecId": "avc1"},
				{"id": "0_hd", "flavorParamsId": 487041, "status": 2, "bitrate": 1500, "width": 1280, "height": 720, "frameRate": 25, "size": 18000, "videoCodecId": "avc1"},
				{"id": "0_hd2", "flavorParamsId": 487051, "status": 2, "bitrate": 1550, "width": 1280, "height": 720, "frameRate": 25, "size": 18600, "videoCodecId": "avc1"},
				{"id": "0_4k", "flavorParamsId": 487061, "status": 4, "bitrate": 0, "width": 0, "height": 0, "description": ""},
				{"id": "0_sd", "flavorParamsId": 487071, "status": -1, "bitrate": 0, "description": "Conversion failed"},
			},
		},
		Profiles: map[int]map[string]any{
			7: {"id": 7, "name": "Lecture Default", "type": 1, "status": 2, "isDefault": 1, "flavorParamsIds": "0,487041,487051,487061,487071,487081"},
		},
		FlavorParams: map[int]map[string]any{
			487041: {"id": 487041, "name": "HD/720", "width": 1280, "height": 720, "videoBitrate": 1500, "videoCodec": "h264"},
			487051: {"id": 487051, "name": "HD/720 alt", "width": 1280, "height": 720, "videoBitrate": 1600, "videoCodec": "h264"},
			487061: {"id": 487061, "name": "4K", "width": 3840, "height": 2160, "videoBitrate": 12000, "videoCodec": "h264"},
			487071: {"id": 487071, "name": "SD", "width": 640, "height": 360, "videoBitrate": 800, "videoCodec": "h264"},
			487081: {"id": 487081, "name": "Mobile", "width": 480, "height": 270, "videoBitrate": 400, "videoCodec": "h264"},
		},
	}
}
