package css

import "fmt"

// ContractError is the panic value raised when a caller breaks an API contract,
// for example converting a keyword to pixels. It is never a normal error path.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Detail)
}

// UnsupportedError reports input outside the supported CSS subset
type UnsupportedError struct {
	Kind  string // "selector", "unit", "value", "at-rule", ...
	Input string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s: %q", e.Kind, e.Input)
}
