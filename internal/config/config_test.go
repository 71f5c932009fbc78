package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     func(tempDir string) string
		useExplicitPath   bool
		wantErr           bool
		want              func(tempDir string) *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: func(tempDir string) string {
				return `library:
  directory: ` + filepath.Join(tempDir, "videos") + `
  video_extensions:
    - .mp4
    - .mov
database:
  path: ` + filepath.Join(tempDir, "custom.db") + `
cache:
  ttl_seconds: 10
server:
  port: 9090
outputs:
  report_directory: custom/reports
`
			},
			useExplicitPath: true,
			want: func(tempDir string) *Config {
				return &Config{
					Library: LibraryConfig{
						Directory:       filepath.Join(tempDir, "videos"),
						VideoExtensions: []string{".mp4", ".mov"},
					},
					Database: DatabaseConfig{Path: filepath.Join(tempDir, "custom.db")},
					Cache:    CacheConfig{TTLSeconds: 10},
					Server: ServerConfig{
						Port: 9090,
						CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
					},
					Outputs: OutputsConfig{ReportDirectory: "custom/reports"},
				}
			},
		},
		{
			name: "missing config file uses defaults",
			configContent: func(string) string {
				return ""
			},
			want: func(string) *Config {
				return &Config{
					Library:  LibraryConfig{VideoExtensions: []string{".mp4"}},
					Database: DatabaseConfig{Path: "shed.db"},
					Cache:    CacheConfig{TTLSeconds: 5},
					Server: ServerConfig{
						Port: 8080,
						CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
					},
					Outputs: OutputsConfig{ReportDirectory: "reports"},
				}
			},
		},
		{
			name: "invalid YAML format",
			configContent: func(string) string {
				return `library:
  directory: somewhere
  invalid yaml format here [[[
`
			},
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "library directory must exist",
			configContent: func(tempDir string) string {
				return `library:
  directory: ` + filepath.Join(tempDir, "does-not-exist") + `
`
			},
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"must be an existing and readable directory",
			},
		},
		{
			name: "report template must be a readable file",
			configContent: func(tempDir string) string {
				return `templates:
  report_template: ` + filepath.Join(tempDir, "missing.md.go.tmpl") + `
`
			},
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"must be an existing and readable file",
			},
		},
		{
			name: "invalid server port",
			configContent: func(string) string {
				return `server:
  port: 0
`
			},
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "videos"), 0755))

			content := tt.configContent(tempDir)
			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
			} else {
				originalDir, err := os.Getwd()
				require.NoError(t, err)
				defer func() {
					require.NoError(t, os.Chdir(originalDir))
				}()
				require.NoError(t, os.Chdir(tempDir))
				if content != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(content), 0644))
				}
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(tempDir), got)
		})
	}
}
