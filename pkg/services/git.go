package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// authenticatedRemote embeds an OAuth token into an https remote URL.
func authenticatedRemote(remoteURL, token string) (string, error) {
	u, err := url.Parse(remoteURL)
	if err != nil {
		return "", fmt.Errorf("invalid remote url: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("remote %q is not an http(s) url", remoteURL)
	}
	u.User = url.UserPassword("oauth2", token)
	return u.String(), nil
}

// redactOutput hides the token and the authenticated URL from git output.
func redactOutput(output, token, authenticatedURL, remoteURL string) string {
	safeLog := output
	if authenticatedURL != "" {
		safeLog = strings.ReplaceAll(safeLog, authenticatedURL, remoteURL)
	}
	if token != "" {
		safeLog = strings.ReplaceAll(safeLog, token, "***")
	}
	return safeLog
}

// ExecuteGitWithToken runs git in dir, replacing the remote name argument
// with a token-authenticated URL. The returned log never contains the token.
func ExecuteGitWithToken(ctx context.Context, dir, remote, token string, args ...string) (string, error) {
	cmdGetURL := exec.CommandContext(ctx, "git", "remote", "get-url", remote)
	cmdGetURL.Dir = dir
	outURL, err := cmdGetURL.Output()
	if err != nil {
		return "Failed to get remote url", err
	}
	remoteURL := strings.TrimSpace(string(outURL))
	authURL, err := authenticatedRemote(remoteURL, token)
	if err != nil {
		return "Invalid remote url", err
	}

	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == remote {
			newArgs[i] = authURL
		}
	}
	cmd := exec.CommandContext(ctx, "git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	return redactOutput(string(output), token, authURL, remoteURL), err
}

// SyncRepo pulls the content repository and reloads the state on success.
func (s *State) SyncRepo(ctx context.Context, repoPath, configPath, remote, branch, token string) (string, error) {
	out, err := ExecuteGitWithToken(ctx, repoPath, remote, token, "pull", remote, branch)
	if err != nil {
		return out, err
	}
	if err := s.Reload(ctx, repoPath, configPath, s.ScanConcurrency); err != nil {
		return out, fmt.Errorf("reload after pull: %w", err)
	}
	return out, nil
}
