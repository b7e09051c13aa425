package game

import "go.uber.org/zap"

// precondition logs a failed entity lookup once per distinct failure instead of every frame.
type precondition struct {
	last string
}

// ok reports whether err is nil, logging transitions between failing and passing.
func (p *precondition) ok(log *zap.Logger, err error) bool {
	if err == nil {
		if p.last != "" {
			log.Info("precondition restored", zap.String("was", p.last))
			p.last = ""
		}
		return true
	}
	if msg := err.Error(); msg != p.last {
		log.Warn("skipping system work", zap.Error(err))
		p.last = msg
	}
	return false
}
