package leave

import "errors"

var ErrBalanceNotFound = errors.New("leave balance not found")
