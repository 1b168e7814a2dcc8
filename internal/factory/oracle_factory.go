package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/mlmodel"
)

// OracleFactory creates probability oracles
type OracleFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewOracleFactory creates a new oracle factory
func NewOracleFactory(cfg *config.Config, logger *zap.Logger) *OracleFactory {
	return &OracleFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateOracle creates the probability oracle from the configured model
// files. Missing or unreadable model files leave the oracle neutral.
func (f *OracleFactory) CreateOracle() *mlmodel.Oracle {
	return mlmodel.New(
		f.cfg.GetString("model.message_path"),
		f.cfg.GetString("model.url_path"),
		f.logger,
	)
}
