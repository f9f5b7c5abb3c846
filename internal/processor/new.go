package processor

import (
	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

type implProcessor struct {
	cfg    config.WatchConfig
	remote workflow.Remote
	logger logger.Logger
}

// New creates a Processor that talks to remote with the watch settings in cfg.
func New(cfg config.WatchConfig, remote workflow.Remote, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		remote: remote,
		logger: log,
	}
}
