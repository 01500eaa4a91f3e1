package testutil

import "errors"

// ErrNotSaved is returned by FakeTabRepository.Load for a variant never saved.
var ErrNotSaved = errors.New("fake: nothing saved")
