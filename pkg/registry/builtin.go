package registry

import (
	"github.com/stelgo/actionhub/pkg/actions/index"
	"github.com/stelgo/actionhub/pkg/actions/serverlog"
	"github.com/stelgo/actionhub/pkg/actions/slack"
	"github.com/stelgo/actionhub/pkg/protocol"
)

// RegisterBuiltIns registers the fixed set of built-in action types into the
// given registry. This is the seam between the library of action types and a
// specific server's registry instance.
func RegisterBuiltIns(registry *ActionTypeRegistry) error {
	builtins := []*protocol.ActionType{
		index.NewActionType(),
		serverlog.NewActionType(),
		slack.NewActionType(),
	}

	for _, actionType := range builtins {
		if err := registry.Register(actionType); err != nil {
			return err
		}
	}

	return nil
}
