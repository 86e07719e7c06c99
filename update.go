package inpaint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the running build's version string, set via -ldflags at
// release time; left at "0.0.0" for development builds.
var Version = "0.0.0"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// UpdateInfo describes a GitHub release discovered by CheckForUpdate.
type UpdateInfo struct {
	Version  semver.Version
	AssetURL string
}

// detectLatestRelease queries the GitHub Releases API for repo and returns
// the highest semver-tagged, non-draft, non-prerelease release it can find,
// grounded on Fepozopo-timp's detectLatestFallback.
func detectLatestRelease(repo string) (*UpdateInfo, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading github response: %w", err)
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}

	type candidate struct {
		ver      semver.Version
		assetURL string
	}
	var candidates []candidate

	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
			if match == "" {
				continue
			}
		}
		v, perr := semver.Parse(strings.TrimPrefix(match, "v"))
		if perr != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			lower := strings.ToLower(a.Name)
			if strings.Contains(lower, "linux") || strings.Contains(lower, "darwin") ||
				strings.Contains(lower, "windows") || strings.Contains(lower, "amd64") || strings.Contains(lower, "arm64") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, candidate{ver: v, assetURL: assetURL})
	}

	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ver.GT(candidates[j].ver) })
	best := candidates[0]
	return &UpdateInfo{Version: best.ver, AssetURL: best.assetURL}, nil
}

// CheckForUpdate reports the latest release of repo (owner/name), or nil if
// none could be found or none is newer than the running Version.
func CheckForUpdate(repo string) (*UpdateInfo, error) {
	latest, err := detectLatestRelease(repo)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	current, perr := semver.Parse(Version)
	if perr == nil && !latest.Version.GT(current) {
		return nil, nil
	}
	return latest, nil
}

// ApplyUpdate downloads info's asset over the current executable and
// restarts the process in place (falling back to spawning a child process
// if exec-replace is unsupported), mirroring Fepozopo-timp's
// CheckForUpdates restart logic.
func ApplyUpdate(info *UpdateInfo, confirm io.Reader) error {
	reader := bufio.NewReader(confirm)
	fmt.Printf("A new version (%s) is available. Update now? (y/N): ", info.Version)
	line, _ := reader.ReadString('\n')
	answer := strings.TrimSpace(strings.ToLower(line))
	if answer != "y" && answer != "yes" {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(info.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			return fmt.Errorf("updated to %s but failed to restart: %v (fallback: %v)", info.Version, err, startErr)
		}
		os.Exit(0)
	}
	return nil
}
