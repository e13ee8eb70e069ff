package command

// Family is a fixed, ordered set of command names for one data-type family.
// Names are go-redis method names; Prefix is prepended when resolving them
// on a handle, which lets a nested family reuse short names such as Get or Set.
type Family struct {
	Name     string
	Prefix   string
	commands []string
}

// NewFamily creates a family. The command list is copied.
func NewFamily(name, prefix string, commands ...string) Family {
	return Family{
		Name:     name,
		Prefix:   prefix,
		commands: append([]string(nil), commands...),
	}
}

// Names returns a copy of the command names in declaration order.
func (f Family) Names() []string {
	return append([]string(nil), f.commands...)
}

// Len returns the number of commands in the family.
func (f Family) Len() int {
	return len(f.commands)
}

// Method returns the client method name for a command of this family.
func (f Family) Method(name string) string {
	return f.Prefix + name
}
