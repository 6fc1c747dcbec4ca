package escrow

import (
	"liquidnation/charm"
	nativecommon "liquidnation/native/common"
)

// Op is the closed set of escrow operations selectable through the public
// input. The zero value is the plain transfer path taken when no selector is
// present.
type Op uint8

const (
	OpTransfer Op = iota
	OpCreate
	OpRelease
	OpRefund
	OpDispute
	OpResolve
)

// String returns the selector spelling of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpRelease:
		return "release"
	case OpRefund:
		return "refund"
	case OpDispute:
		return "dispute"
	case OpResolve:
		return "resolve"
	default:
		return "transfer"
	}
}

func decodeOp(x charm.Data) (Op, error) {
	if x.IsZero() {
		return OpTransfer, nil
	}
	var selector string
	if err := x.Value(&selector); err != nil {
		return 0, nativecommon.Structuralf("escrow: public input is not an operation selector: %v", err)
	}
	switch selector {
	case "create":
		return OpCreate, nil
	case "release":
		return OpRelease, nil
	case "refund":
		return OpRefund, nil
	case "dispute":
		return OpDispute, nil
	case "resolve":
		return OpResolve, nil
	default:
		return 0, nativecommon.Structuralf("escrow: unknown operation selector %q", selector)
	}
}

// Validate is the escrow application's state-transition validator. The NFT
// tag routes an operation selector to the escrow state machine; the token tag
// always runs the conservation checker. A nil return accepts the operation;
// any error rejects it with no partial effects. The function is pure and
// deterministic.
func Validate(app charm.App, tx *charm.Transaction, x, w charm.Data) error {
	switch app.Tag {
	case charm.TagNFT:
		op, err := decodeOp(x)
		if err != nil {
			return err
		}
		switch op {
		case OpCreate:
			return validateCreate(app, tx, w)
		case OpRelease:
			return validateRelease(app, tx, w)
		case OpRefund:
			return validateRefund(app, tx, w)
		case OpDispute:
			return validateDispute(app, tx, w)
		case OpResolve:
			return validateResolve(app, tx, w)
		default:
			return validateTransfer(app, tx)
		}
	case charm.TagToken:
		return nativecommon.TokenConservation(app, tx)
	default:
		return nativecommon.Structuralf("escrow: unsupported app tag %q", app.Tag)
	}
}

// AppContract exposes the boolean accept/reject surface the host runtime
// consumes.
func AppContract(app charm.App, tx *charm.Transaction, x, w charm.Data) bool {
	return Validate(app, tx, x, w) == nil
}
