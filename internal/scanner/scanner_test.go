package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, tool Tool, mode Mode, opts Options) Scanner {
	t.Helper()
	s, err := New(tool, mode, "http://example.com", "/tmp/words.txt", opts)
	require.NoError(t, err)
	return s
}

func TestNewRejectsUnknownTool(t *testing.T) {
	_, err := New(Tool(99), ModeDirectory, "http://example.com", "w.txt", Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestParseToolRoundTrip(t *testing.T) {
	for _, name := range Tools() {
		tool, err := ParseTool(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tool.String())
	}
	_, err := ParseTool("nikto")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Mode
	}{
		{"directory", ModeDirectory},
		{"dir", ModeDirectory},
		{"vhost", ModeVhost},
		{"dns", ModeDNS},
	} {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseMode("portscan")
	assert.Error(t, err)
}

func TestCommandIsDeterministic(t *testing.T) {
	for _, name := range Tools() {
		tool, _ := ParseTool(name)
		s := mustNew(t, tool, ModeDirectory, Default())
		assert.Equal(t, s.Command(), s.Command(), name)
	}
}

func TestFeroxbusterCommand(t *testing.T) {
	opts := Default()
	opts.Proxy = "http://127.0.0.1:8080"
	cmd := mustNew(t, Feroxbuster, ModeDirectory, opts).Command()

	joined := strings.Join(cmd, " ")
	assert.Equal(t, "feroxbuster", cmd[0])
	assert.Contains(t, joined, "-u http://example.com")
	assert.Contains(t, joined, "-w /tmp/words.txt")
	assert.Contains(t, joined, "-d 3")
	assert.Contains(t, joined, "-x php,html,txt,js")
	assert.Contains(t, joined, "-t 50")
	assert.Contains(t, joined, "--rate-limit 200")
	assert.Contains(t, joined, "-p http://127.0.0.1:8080")
	assert.Contains(t, joined, "-s 200,204,301,302,307,401,403")
	assert.Contains(t, joined, "--no-state")
}

func TestFfufDirCommandAddsFuzzPlaceholder(t *testing.T) {
	cmd := mustNew(t, Ffuf, ModeDirectory, Default()).Command()
	joined := strings.Join(cmd, " ")
	assert.Contains(t, joined, "-u http://example.com/FUZZ")
	assert.Contains(t, joined, "-e .php,.html,.txt,.js")
	assert.Contains(t, joined, "-fc 400,404")
	assert.Contains(t, joined, "-rate 200")
}

func TestFfufDirCommandKeepsExistingPlaceholder(t *testing.T) {
	s, err := New(Ffuf, ModeDirectory, "http://example.com/FUZZ/api", "w.txt", Default())
	require.NoError(t, err)
	assert.Contains(t, strings.Join(s.Command(), " "), "-u http://example.com/FUZZ/api")
}

func TestFfufVhostCommand(t *testing.T) {
	opts := Default()
	opts.Domain = "example.com"
	cmd := mustNew(t, Ffuf, ModeVhost, opts).Command()
	joined := strings.Join(cmd, " ")
	assert.Contains(t, joined, "-H Host: FUZZ.example.com")
	assert.NotContains(t, joined, "/FUZZ ") // vhost mode leaves the URL alone
}

func TestVhostDomainDefaultsToTargetHost(t *testing.T) {
	// No explicit domain: the Host header derives from the target's
	// hostname, port and path stripped.
	s, err := New(Ffuf, ModeVhost, "http://example.com:8080/app", "w.txt", Default())
	require.NoError(t, err)
	assert.Contains(t, strings.Join(s.Command(), " "), "-H Host: FUZZ.example.com")

	w, err := New(Wfuzz, ModeVhost, "https://target.example.org", "w.txt", Default())
	require.NoError(t, err)
	assert.Contains(t, strings.Join(w.Command(), " "), "-H Host: FUZZ.target.example.org")

	// An explicit domain still wins.
	opts := Default()
	opts.Domain = "other.com"
	e, err := New(Ffuf, ModeVhost, "http://example.com", "w.txt", opts)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(e.Command(), " "), "-H Host: FUZZ.other.com")
}

func TestGobusterModes(t *testing.T) {
	dir := mustNew(t, Gobuster, ModeDirectory, Default()).Command()
	assert.Equal(t, []string{"gobuster", "dir"}, dir[:2])
	assert.Contains(t, strings.Join(dir, " "), "-r") // follow redirects default

	vhost := mustNew(t, Gobuster, ModeVhost, Default()).Command()
	assert.Equal(t, []string{"gobuster", "vhost"}, vhost[:2])
	assert.Contains(t, strings.Join(vhost, " "), "--append-domain")

	dns := mustNew(t, Gobuster, ModeDNS, Default()).Command()
	assert.Equal(t, []string{"gobuster", "dns"}, dns[:2])
	assert.Contains(t, strings.Join(dns, " "), "-i")

	for _, cmd := range [][]string{dir, vhost, dns} {
		assert.Contains(t, cmd, "--no-color")
	}
}

func TestDirbCommandIsPositional(t *testing.T) {
	cmd := mustNew(t, Dirb, ModeDirectory, Default()).Command()
	require.True(t, len(cmd) >= 3)
	assert.Equal(t, "dirb", cmd[0])
	assert.Equal(t, "http://example.com", cmd[1])
	assert.Equal(t, "/tmp/words.txt", cmd[2])
	assert.Contains(t, cmd, "-S")
}

func TestWfuzzExtensionsUsePayloadList(t *testing.T) {
	cmd := mustNew(t, Wfuzz, ModeDirectory, Default()).Command()
	joined := strings.Join(cmd, " ")
	assert.Contains(t, joined, "-z list,.php,.html,.txt,.js")
	assert.Contains(t, joined, "FUZZ{ext}")
	assert.Contains(t, joined, "--hc 404")
}

func TestWfuzzVhostCommand(t *testing.T) {
	opts := Default()
	opts.Domain = "example.com"
	opts.FilterLines = "10"
	cmd := mustNew(t, Wfuzz, ModeVhost, opts).Command()
	joined := strings.Join(cmd, " ")
	assert.Contains(t, joined, "-H Host: FUZZ.example.com")
	assert.Contains(t, joined, "--hl 10")
}

func TestDirsearchCommand(t *testing.T) {
	cmd := mustNew(t, Dirsearch, ModeDirectory, Default()).Command()
	joined := strings.Join(cmd, " ")
	assert.Contains(t, joined, "--max-recursion-depth 3")
	assert.Contains(t, joined, "--exclude-status 400,404")
	assert.Contains(t, joined, "--random-agent")
}

func TestAmassDefaultsToPassive(t *testing.T) {
	cmd := mustNew(t, Amass, ModeDNS, Default()).Command()
	assert.Equal(t, []string{"amass", "enum", "-d", "http://example.com"}, cmd[:4])
	assert.Contains(t, cmd, "-passive")
	assert.NotContains(t, cmd, "-brute")
}

func TestSubfinderDefaults(t *testing.T) {
	cmd := mustNew(t, Subfinder, ModeDNS, Default()).Command()
	joined := strings.Join(cmd, " ")
	assert.Contains(t, joined, "-t 30")
	assert.Contains(t, joined, "-timeout 30")
	assert.Contains(t, joined, "-all")
	assert.NotContains(t, joined, "-recursive")
}

func TestFromMapOverlaysDefaults(t *testing.T) {
	opts := FromMap(map[string]string{
		"threads":      "10",
		"filter_codes": "404",
		"passive":      "false",
		"bogus_key":    "ignored",
	})
	assert.Equal(t, 10, opts.Threads)
	assert.Equal(t, "404", opts.FilterCodes)
	assert.False(t, opts.Passive)
	// Untouched keys keep their documented defaults.
	assert.Equal(t, 200, opts.Rate)
	assert.Equal(t, "php,html,txt,js", opts.Extensions)
}

func TestFromMapToleratesMalformedValues(t *testing.T) {
	opts := FromMap(map[string]string{
		"threads": "not-a-number",
		"passive": "maybe",
	})
	assert.Equal(t, Default().Threads, opts.Threads)
	assert.Equal(t, Default().Passive, opts.Passive)
}

func TestValidateTarget(t *testing.T) {
	assert.NoError(t, ValidateTarget("http://example.com"))
	assert.NoError(t, ValidateTarget("https://example.com"))
	assert.Error(t, ValidateTarget(""))
	assert.Error(t, ValidateTarget("example.com"))
	assert.Error(t, ValidateTarget("ftp://example.com"))
}
