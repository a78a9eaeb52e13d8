package fetcher

import (
	"fmt"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/log"
)

func FactoryFetcher(version string, logger log.Logger, config *cfg.Config, mysql *db.Mysql) (Fetcher, error) {
	switch version {
	case "v1":
		return NewFetcherV1(logger, config, mysql)
	case "v2":
		return NewFetcherV2(logger, config, mysql)
	default:
		return nil, fmt.Errorf("[ERROR] Unsupported fetcher version: %s", version)
	}
}
