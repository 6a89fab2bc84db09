package gen

import (
	"strings"

	"github.com/structconf/structconf/schema"
)

// FeatureSet emits the compiled feature-flag artifacts: the flag
// enumeration, the boolean state record with lookup and restart detection,
// per-flag default functions, a builder seeded from the defaults, and typed
// wrappers around the global tracker accessors.
func (f *File) FeatureSet(set *schema.FeatureSet) {
	f.Import(featurePkg)

	f.flagEnum(set)
	f.flagDefaults(set)
	f.stateStruct(set)
	f.stateBuilder(set)
	f.trackerBridge(set)
}

func (f *File) flagEnum(set *schema.FeatureSet) {
	f.printf("// %s enumerates the declared feature flags.\n", set.Name)
	f.printf("type %s int\n\n", set.Name)

	f.printf("const (\n")

	for i, flag := range set.Flags {
		if i == 0 {
			f.printf("\t%s%s %s = iota\n", set.Name, exportName(flag.Name), set.Name)
		} else {
			f.printf("\t%s%s\n", set.Name, exportName(flag.Name))
		}
	}

	f.printf(")\n\n")

	f.printf("// String returns the declared flag name.\n")
	f.printf("func (f %s) String() string {\n", set.Name)
	f.printf("\tswitch f {\n")

	for _, flag := range set.Flags {
		f.printf("\tcase %s%s:\n\t\treturn %q\n", set.Name, exportName(flag.Name), flag.Name)
	}

	f.printf("\t}\n\n\treturn \"unknown\"\n}\n\n")
}

func (f *File) flagDefaults(set *schema.FeatureSet) {
	for _, flag := range set.Flags {
		f.printf("// %s%sDefault returns the compiled-in default for %s.\n", set.Name, exportName(flag.Name), flag.Name)
		f.printf("func %s%sDefault() bool {\n\treturn %t\n}\n\n", set.Name, exportName(flag.Name), flag.Default)
	}

	f.printf("// Default returns the compiled-in default for the flag.\n")
	f.printf("func (f %s) Default() bool {\n", set.Name)
	f.printf("\tswitch f {\n")

	for _, flag := range set.Flags {
		name := exportName(flag.Name)
		f.printf("\tcase %s%s:\n\t\treturn %s%sDefault()\n", set.Name, name, set.Name, name)
	}

	f.printf("\t}\n\n\treturn false\n}\n\n")
}

func (f *File) stateStruct(set *schema.FeatureSet) {
	f.printf("// %sState records the current value of every flag.\n", set.Name)
	f.printf("type %sState struct {\n", set.Name)

	for _, flag := range set.Flags {
		f.printf("\t%s bool\n", exportName(flag.Name))
	}

	f.printf("}\n\n")

	f.printf("// Default%sState returns a state seeded with every compiled-in default.\n", set.Name)
	f.printf("func Default%sState() %sState {\n", set.Name, set.Name)
	f.printf("\treturn %sState{\n", set.Name)

	for _, flag := range set.Flags {
		name := exportName(flag.Name)
		f.printf("\t\t%s: %s%sDefault(),\n", name, set.Name, name)
	}

	f.printf("\t}\n}\n\n")

	f.printf("// Enabled looks up a flag's value in the state.\n")
	f.printf("func (s %sState) Enabled(flag %s) bool {\n", set.Name, set.Name)
	f.printf("\tswitch flag {\n")

	for _, flag := range set.Flags {
		name := exportName(flag.Name)
		f.printf("\tcase %s%s:\n\t\treturn s.%s\n", set.Name, name, name)
	}

	f.printf("\t}\n\n\treturn false\n}\n\n")

	f.restartStateFunc(set)
}

func (f *File) restartStateFunc(set *schema.FeatureSet) {
	var comparisons []string

	for _, flag := range set.Flags {
		if flag.Restart {
			name := exportName(flag.Name)
			comparisons = append(comparisons, "s."+name+" != other."+name)
		}
	}

	f.printf("// RestartRequired reports whether any restart-tagged flag differs between\n")
	f.printf("// the two states. Untagged flags never participate.\n")
	f.printf("func (s %sState) RestartRequired(other %sState) bool {\n", set.Name, set.Name)

	if len(comparisons) == 0 {
		f.printf("\treturn false\n}\n\n")

		return
	}

	f.printf("\treturn %s\n}\n\n", strings.Join(comparisons, " ||\n\t\t"))
}

func (f *File) stateBuilder(set *schema.FeatureSet) {
	f.printf("// %sStateBuilder builds a state value starting from the compiled-in\n", set.Name)
	f.printf("// defaults, overriding individual flags as needed.\n")
	f.printf("type %sStateBuilder struct {\n\tstate %sState\n}\n\n", set.Name, set.Name)

	f.printf("// New%sStateBuilder creates a builder seeded with every default.\n", set.Name)
	f.printf("func New%sStateBuilder() *%sStateBuilder {\n", set.Name, set.Name)
	f.printf("\treturn &%sStateBuilder{state: Default%sState()}\n}\n\n", set.Name, set.Name)

	for _, flag := range set.Flags {
		name := exportName(flag.Name)
		f.printf("// Set%s overrides %s.\n", name, flag.Name)
		f.printf("func (b *%sStateBuilder) Set%s(value bool) *%sStateBuilder {\n", set.Name, name, set.Name)
		f.printf("\tb.state.%s = value\n\n\treturn b\n}\n\n", name)
	}

	f.printf("// Build returns the assembled state.\n")
	f.printf("func (b *%sStateBuilder) Build() %sState {\n\treturn b.state\n}\n\n", set.Name, set.Name)
}

func (f *File) trackerBridge(set *schema.FeatureSet) {
	f.printf("// Register%s installs the provider as the process-wide feature tracker\n", set.Name)
	f.printf("// and validates that it serves %sState values.\n", set.Name)
	f.printf("func Register%s(p feature.Provider) error {\n", set.Name)
	f.printf("\treturn feature.RegisterGlobal[%sState](p)\n}\n\n", set.Name)

	f.printf("// %sEnabled asserts a flag against the registered tracker. Without a\n", set.Name)
	f.printf("// registration it panics, except in test binaries where the compiled-in\n")
	f.printf("// default is returned.\n")
	f.printf("func %sEnabled(flag %s) bool {\n", set.Name, set.Name)
	f.printf("\treturn feature.Enabled(flag, %sState.Enabled, %s.Default)\n}\n\n", set.Name, set.Name)

	f.printf("// %sEnabledOr asserts a flag, returning fallback when no tracker is\n", set.Name)
	f.printf("// registered.\n")
	f.printf("func %sEnabledOr(flag %s, fallback bool) bool {\n", set.Name, set.Name)
	f.printf("\treturn feature.EnabledOr(flag, %sState.Enabled, fallback)\n}\n\n", set.Name)

	f.printf("// %sEnabledOrDefault asserts a flag, returning the compiled-in default\n", set.Name)
	f.printf("// when no tracker is registered, in every build mode.\n")
	f.printf("func %sEnabledOrDefault(flag %s) bool {\n", set.Name, set.Name)
	f.printf("\treturn feature.EnabledOrDefault(flag, %sState.Enabled, %s.Default)\n}\n\n", set.Name, set.Name)

	f.printf("// Try%sEnabled asserts a flag, reporting an error when no tracker is\n", set.Name)
	f.printf("// registered.\n")
	f.printf("func Try%sEnabled(flag %s) (bool, error) {\n", set.Name, set.Name)
	f.printf("\treturn feature.TryEnabled(flag, %sState.Enabled)\n}\n", set.Name)
}
