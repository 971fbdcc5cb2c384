package engine

import "errors"

var ErrInvalidIndex = errors.New("invalid stage index")
var ErrInvalidTarget = errors.New("invalid countdown target")
var ErrIllegalMutationWhileRunning = errors.New("countdown is running")
var ErrNoFormat = errors.New("no format chosen")
var ErrUnknownFormat = errors.New("unknown format")
var ErrEmptyFormat = errors.New("format has no stages")
var ErrTargetExpired = errors.New("countdown already at zero")
var ErrCountdownRunning = errors.New("cannot change stage while a countdown is running")
var ErrResetNotRequested = errors.New("reset was not requested")
var ErrUnsupportedCommand = errors.New("unsupported command")
