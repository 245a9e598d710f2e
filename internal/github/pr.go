package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/raphi011/treehouse/internal/cmd"
)

// PR is the subset of `gh pr view --json` treehouse uses.
type PR struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	HeadRefName string `json:"headRefName"`
	URL         string `json:"url"`
	State       string `json:"state"` // OPEN, MERGED, CLOSED
}

const prFields = "number,title,headRefName,url,state"

// ParseRef normalises a pull request argument: "123", "#123" or a
// https://github.com/<owner>/<repo>/pull/123 URL. URLs are returned as-is
// so gh can resolve the repository from them.
func ParseRef(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(strings.TrimPrefix(arg, "#")); err == nil {
		if n <= 0 {
			return "", fmt.Errorf("invalid pull request number %d", n)
		}
		return strconv.Itoa(n), nil
	}

	u, err := url.Parse(arg)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid pull request %q: expected a number or URL", arg)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[2] != "pull" {
		return "", fmt.Errorf("invalid pull request URL %q", arg)
	}
	if _, err := strconv.Atoi(parts[3]); err != nil {
		return "", fmt.Errorf("invalid pull request URL %q", arg)
	}
	return arg, nil
}

// ViewPR looks up a pull request from within the repository at dir.
func ViewPR(ctx context.Context, dir, ref string) (PR, error) {
	out, err := cmd.OutputContext(ctx, dir, "gh", "pr", "view", ref, "--json", prFields)
	if err != nil {
		return PR{}, fmt.Errorf("gh pr view %s: %w", ref, err)
	}
	return parsePR(out)
}

func parsePR(data []byte) (PR, error) {
	var pr PR
	if err := json.Unmarshal(data, &pr); err != nil {
		return PR{}, fmt.Errorf("failed to parse gh output: %w", err)
	}
	if pr.Number == 0 || pr.HeadRefName == "" {
		return PR{}, fmt.Errorf("incomplete pull request data from gh")
	}
	return pr, nil
}

// CheckoutPR checks out pull request number inside worktreeDir.
func CheckoutPR(ctx context.Context, worktreeDir string, number int) error {
	if err := cmd.RunContext(ctx, worktreeDir, "gh", "pr", "checkout", strconv.Itoa(number)); err != nil {
		return fmt.Errorf("gh pr checkout %d: %w", number, err)
	}
	return nil
}
