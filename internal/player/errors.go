package player

import errorsmod "cosmossdk.io/errors"

// Codespace for player sentinel errors.
const Codespace = "player"

var (
	ErrInvalidState       = errorsmod.Register(Codespace, 1, "invalid player state")
	ErrInvalidBet         = errorsmod.Register(Codespace, 2, "invalid bet")
	ErrInvalidCard        = errorsmod.Register(Codespace, 3, "invalid card")
	ErrInvalidSecretIndex = errorsmod.Register(Codespace, 4, "secret index out of range")
	ErrSecretMismatch     = errorsmod.Register(Codespace, 5, "secret does not match commitment")
	ErrSecretConflict     = errorsmod.Register(Codespace, 6, "conflicting reveal for committed secret")
)
