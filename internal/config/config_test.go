package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLoader returns a Loader with a fake environment rooted in a temp dir.
func testLoader(t *testing.T, env map[string]string) (Loader, string) {
	t.Helper()
	dir := t.TempDir()
	return Loader{
		EnvFile: filepath.Join(dir, ".env"),
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		HomeDir: func() (string, error) { return filepath.Join(dir, "home"), nil },
	}, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	l, dir := testLoader(t, nil)

	cfg, err := l.Load(Overrides{})
	require.NoError(t, err)

	dataDir := filepath.Join(dir, "home", ".local", "share", "mcquiz")
	assert.Equal(t, DefaultQuestionsFile, cfg.QuestionsPath)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, StatsFileName), cfg.StatsPath)
	assert.Equal(t, filepath.Join(dataDir, FlaggedFileName), cfg.FlaggedPath)
	assert.Equal(t, filepath.Join(dataDir, DBFileName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataDir, LogFileName), cfg.LogPath())
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultSideRecentWrong, cfg.SideRecentWrong)
	assert.Equal(t, DefaultDetailRecentWrong, cfg.DetailRecentWrong)
}

func TestLoad_XDGDataHome(t *testing.T) {
	l, _ := testLoader(t, map[string]string{"XDG_DATA_HOME": "/xdg/data"})

	cfg, err := l.Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/data", "mcquiz"), cfg.DataDir)
}

func TestLoad_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		dotenv    string
		env       map[string]string
		overrides Overrides
		want      string
	}{
		{
			name: "default",
			want: DefaultQuestionsFile,
		},
		{
			name: "file over default",
			yaml: "questions: from-file.json\n",
			want: "from-file.json",
		},
		{
			name:   "dotenv over file",
			yaml:   "questions: from-file.json\n",
			dotenv: "MCQUIZ_QUESTIONS=from-dotenv.json\n",
			want:   "from-dotenv.json",
		},
		{
			name:   "env over dotenv",
			yaml:   "questions: from-file.json\n",
			dotenv: "MCQUIZ_QUESTIONS=from-dotenv.json\n",
			env:    map[string]string{EnvQuestions: "from-env.json"},
			want:   "from-env.json",
		},
		{
			name:      "flag over env",
			yaml:      "questions: from-file.json\n",
			env:       map[string]string{EnvQuestions: "from-env.json"},
			overrides: Overrides{Questions: "from-flag.json"},
			want:      "from-flag.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range tt.env {
				env[k] = v
			}
			l, dir := testLoader(t, env)
			env["XDG_CONFIG_HOME"] = filepath.Join(dir, "config")
			if tt.yaml != "" {
				writeFile(t, filepath.Join(dir, "config", "mcquiz", ConfigFileName), tt.yaml)
			}
			if tt.dotenv != "" {
				writeFile(t, l.EnvFile, tt.dotenv)
			}

			cfg, err := l.Load(tt.overrides)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.QuestionsPath)
		})
	}
}

func TestLoad_HomeDerivesDataFiles(t *testing.T) {
	l, _ := testLoader(t, map[string]string{EnvHome: "/srv/quiz", EnvStats: "/tmp/s.json"})

	cfg, err := l.Load(Overrides{DB: "/tmp/h.db"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/quiz", cfg.DataDir)
	assert.Equal(t, "/tmp/s.json", cfg.StatsPath)
	assert.Equal(t, filepath.Join("/srv/quiz", FlaggedFileName), cfg.FlaggedPath)
	assert.Equal(t, "/tmp/h.db", cfg.DBPath)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	l, dir := testLoader(t, nil)
	_, err := l.Load(Overrides{ConfigPath: filepath.Join(dir, "nope.yml")})
	assert.Error(t, err)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	l, dir := testLoader(t, nil)
	path := filepath.Join(dir, "custom.yml")
	writeFile(t, path, "page_size: 8\nside_recent_wrong: 1\ndata_dir: /data\n")

	cfg, err := l.Load(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.PageSize)
	assert.Equal(t, 1, cfg.SideRecentWrong)
	assert.Equal(t, "/data", cfg.DataDir)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	l, dir := testLoader(t, nil)
	path := filepath.Join(dir, "custom.yml")
	writeFile(t, path, "page_sise: 8\n")

	_, err := l.Load(Overrides{ConfigPath: path})
	assert.Error(t, err)
}

func TestLoad_EmptyConfigFile(t *testing.T) {
	l, dir := testLoader(t, nil)
	path := filepath.Join(dir, "empty.yml")
	writeFile(t, path, "")

	cfg, err := l.Load(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func TestLoad_PageSizeFromEnv(t *testing.T) {
	l, _ := testLoader(t, map[string]string{EnvPageSize: "12"})
	cfg, err := l.Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.PageSize)

	l, _ = testLoader(t, map[string]string{EnvPageSize: "many"})
	_, err = l.Load(Overrides{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{QuestionsPath: "q.json", PageSize: 1}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"negative side recent", func(c *Config) { c.SideRecentWrong = -1 }, true},
		{"negative detail recent", func(c *Config) { c.DetailRecentWrong = -1 }, true},
		{"no questions path", func(c *Config) { c.QuestionsPath = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
