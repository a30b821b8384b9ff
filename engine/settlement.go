package engine

import "github.com/Freetsh/freetsh-core/types"

// GloballySettle force-closes every open call order against mia at
// settlementPrice, delegating to the matching core.
func (e *Engine) GloballySettle(mia types.AssetID, settlementPrice types.Price) error {
	return e.match.GloballySettle(mia, settlementPrice)
}

// Revive attempts to bring a globally-settled MIA back to active trading,
// delegating to the matching core.
func (e *Engine) Revive(mia types.AssetID, issuer string) error {
	return e.match.Revive(mia, issuer)
}

// ProcessForceSettlements matches mia's outstanding force-settlement
// claims against its least-collateralized call orders, delegating to the
// matching core.
func (e *Engine) ProcessForceSettlements(mia types.AssetID) error {
	return e.match.ProcessForceSettlements(mia)
}

// CheckCallOrders sweeps mia's least-collateralized call orders against
// its resting limit book, delegating to the matching core.
func (e *Engine) CheckCallOrders(mia types.AssetID, forNewLimitOrder bool) (bool, error) {
	return e.match.CheckCallOrders(mia, forNewLimitOrder)
}
