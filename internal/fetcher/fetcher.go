package fetcher

import (
	"context"

	"github.com/thep200/repo-visualizer/internal/scene"
)

// Fetcher lấy toàn bộ dữ liệu hiển thị của một repository từ GitHub API
// và trả về snapshot để dựng scene.
type Fetcher interface {
	Fetch(ctx context.Context, user, repo string) (*scene.RepoData, error)
}
