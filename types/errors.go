package types

import "github.com/pkg/errors"

// Precondition-failure errors: caller bugs, the enclosing
// transaction must abort.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrAssetKindMismatch   = errors.New("asset kind mismatch")
	ErrNotMarketIssued     = errors.New("asset is not a market-issued asset")
	ErrZeroSellAmount      = errors.New("limit order sell amount must be positive")
	ErrZeroDebtOrCollateral = errors.New("call order debt and collateral must be positive")
	ErrNoFeed              = errors.New("bitasset has no active price feed")
	ErrAlreadySettled      = errors.New("bitasset is already globally settled")
	ErrNotSettled          = errors.New("bitasset is not globally settled")
	ErrBalanceInsufficient = errors.New("balance insufficient for debit")
	ErrMarketExists        = errors.New("market already exists for this asset")
	ErrInvalidRatio        = errors.New("ratio has a zero denominator")
)

// BlackSwanError is returned by the margin-call sweep and by
// force-settlement processing when collateral is insufficient to honor a
// required payout and the matching Config has BlackSwanEnabled false.
// With BlackSwanEnabled true the matching core invokes global settlement
// itself and returns no error. IsBlackSwan lets a caller recognise it.
type BlackSwanError struct {
	Asset AssetID
}

func (e *BlackSwanError) Error() string {
	return "black swan: insufficient collateral system-wide for " + e.Asset.String()
}

func NewBlackSwanError(asset AssetID) error {
	return &BlackSwanError{Asset: asset}
}

// IsBlackSwan reports whether err is (or wraps) a BlackSwanError.
func IsBlackSwan(err error) bool {
	var bs *BlackSwanError
	return errors.As(err, &bs)
}
