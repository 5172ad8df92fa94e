package controllers

import (
	"posdz-backend/ledger"
	"posdz-backend/notify"
)

// Engines are wired once at boot. Controllers stay thin: parse, delegate,
// serialize — the invariants live in the ledger and notify packages.
var (
	Ledger   *ledger.Engine
	Feed     *notify.Feed
	Detector *notify.Detector
)

func Init(engine *ledger.Engine, feed *notify.Feed, detector *notify.Detector) {
	Ledger = engine
	Feed = feed
	Detector = detector
}
