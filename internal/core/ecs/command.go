package ecs

// CommandKind tags a deferred structural edit.
type CommandKind uint8

const (
	CmdAttach          CommandKind = iota + 1 // Target becomes the last child of Parent
	CmdDetach                                 // Target leaves its parent
	CmdAddComponent                           // Component attaches to Target
	CmdRemoveComponent                        // Component detaches from Target and is destroyed
	CmdSetEnabled                             // Target's local flag becomes Enabled
	CmdDestroy                                // Target and its subtree are destroyed
)

func (k CommandKind) String() string {
	switch k {
	case CmdAttach:
		return "attach"
	case CmdDetach:
		return "detach"
	case CmdAddComponent:
		return "add-component"
	case CmdRemoveComponent:
		return "remove-component"
	case CmdSetEnabled:
		return "set-enabled"
	case CmdDestroy:
		return "destroy"
	}
	return "unknown"
}

// Command records the intent of a structural edit issued against an active
// scene. It holds handles, not pointers, so a target destroyed by an earlier
// command in the same flush resolves to nothing and the command is dropped.
type Command struct {
	Kind      CommandKind
	Target    EntityID
	Parent    EntityID
	Component Component
	Enabled   bool
}
