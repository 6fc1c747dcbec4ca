package swap

import (
	"liquidnation/charm"
	nativecommon "liquidnation/native/common"
)

// Op is the closed set of order operations selectable through the public
// input. The zero value is the plain transfer path taken when no selector is
// present.
type Op uint8

const (
	OpTransfer Op = iota
	OpCreate
	OpFill
	OpCancel
	OpPartialFill
)

// String returns the selector spelling of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpFill:
		return "fill"
	case OpCancel:
		return "cancel"
	case OpPartialFill:
		return "partial_fill"
	default:
		return "transfer"
	}
}

// decodeOp maps the public input onto the closed operation set. An absent
// input selects the transfer path; a present input must decode to a known
// selector string or the whole operation rejects.
func decodeOp(x charm.Data) (Op, error) {
	if x.IsZero() {
		return OpTransfer, nil
	}
	var selector string
	if err := x.Value(&selector); err != nil {
		return 0, nativecommon.Structuralf("swap: public input is not an operation selector: %v", err)
	}
	switch selector {
	case "create":
		return OpCreate, nil
	case "fill":
		return OpFill, nil
	case "cancel":
		return OpCancel, nil
	case "partial_fill":
		return OpPartialFill, nil
	default:
		return 0, nativecommon.Structuralf("swap: unknown operation selector %q", selector)
	}
}

// Validate is the swap application's state-transition validator. It selects
// per tag: the NFT tag routes an operation selector to the order state
// machine, the token tag always runs the conservation checker. A nil return
// accepts the operation; any error rejects it with no partial effects.
//
// Validate is pure and deterministic: it reads the transaction and witness,
// holds no state of its own, and identical arguments always yield an
// identical result.
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
		case OpFill:
			return validateFill(app, tx, w)
		case OpCancel:
			return validateCancel(app, tx)
		case OpPartialFill:
			return validatePartialFill(app, tx, w)
		default:
			return validateTransfer(app, tx)
		}
	case charm.TagToken:
		return nativecommon.TokenConservation(app, tx)
	default:
		return nativecommon.Structuralf("swap: unsupported app tag %q", app.Tag)
	}
}

// AppContract exposes the boolean accept/reject surface the host runtime
// consumes.
func AppContract(app charm.App, tx *charm.Transaction, x, w charm.Data) bool {
	return Validate(app, tx, x, w) == nil
}
