package pbx

// Kind identifies the concrete schema of an object in the graph.
// The set is closed: every isa tag Xcode writes into a project file maps
// to exactly one Kind, and an unrecognized tag is a load error rather
// than an extension point.
type Kind int

const (
	KindProject Kind = iota
	KindGroup
	KindVariantGroup
	KindVersionGroup
	KindFileReference
	KindReferenceProxy
	KindNativeTarget
	KindAggregateTarget
	KindLegacyTarget
	KindTargetDependency
	KindContainerItemProxy
	KindBuildFile
	KindSourcesBuildPhase
	KindFrameworksBuildPhase
	KindResourcesBuildPhase
	KindCopyFilesBuildPhase
	KindShellScriptBuildPhase
	KindHeadersBuildPhase
	KindConfigurationList
	KindBuildConfiguration
)

// isaNames maps each Kind to the isa tag persisted in the property list.
var isaNames = map[Kind]string{
	KindProject:               "PBXProject",
	KindGroup:                 "PBXGroup",
	KindVariantGroup:          "PBXVariantGroup",
	KindVersionGroup:          "XCVersionGroup",
	KindFileReference:         "PBXFileReference",
	KindReferenceProxy:        "PBXReferenceProxy",
	KindNativeTarget:          "PBXNativeTarget",
	KindAggregateTarget:       "PBXAggregateTarget",
	KindLegacyTarget:          "PBXLegacyTarget",
	KindTargetDependency:      "PBXTargetDependency",
	KindContainerItemProxy:    "PBXContainerItemProxy",
	KindBuildFile:             "PBXBuildFile",
	KindSourcesBuildPhase:     "PBXSourcesBuildPhase",
	KindFrameworksBuildPhase:  "PBXFrameworksBuildPhase",
	KindResourcesBuildPhase:   "PBXResourcesBuildPhase",
	KindCopyFilesBuildPhase:   "PBXCopyFilesBuildPhase",
	KindShellScriptBuildPhase: "PBXShellScriptBuildPhase",
	KindHeadersBuildPhase:     "PBXHeadersBuildPhase",
	KindConfigurationList:     "XCConfigurationList",
	KindBuildConfiguration:    "XCBuildConfiguration",
}

// kindsByIsa is the inverse of isaNames, built once at init.
var kindsByIsa = func() map[string]Kind {
	m := make(map[string]Kind, len(isaNames))
	for k, isa := range isaNames {
		m[isa] = k
	}
	return m
}()

// Isa returns the isa tag for the kind.
func (k Kind) Isa() string { return isaNames[k] }

// String returns the isa tag; Kind values print as they persist.
func (k Kind) String() string { return isaNames[k] }

// KindForIsa resolves a persisted isa tag to its Kind.
// The second return value is false for unrecognized tags.
func KindForIsa(isa string) (Kind, bool) {
	k, ok := kindsByIsa[isa]
	return k, ok
}

// IsTarget reports whether the kind is one of the target variants.
func (k Kind) IsTarget() bool {
	switch k {
	case KindNativeTarget, KindAggregateTarget, KindLegacyTarget:
		return true
	}
	return false
}

// IsBuildPhase reports whether the kind is one of the build-phase variants.
func (k Kind) IsBuildPhase() bool {
	switch k {
	case KindSourcesBuildPhase, KindFrameworksBuildPhase, KindResourcesBuildPhase,
		KindCopyFilesBuildPhase, KindShellScriptBuildPhase, KindHeadersBuildPhase:
		return true
	}
	return false
}

// IsGroup reports whether the kind is one of the group variants.
func (k Kind) IsGroup() bool {
	switch k {
	case KindGroup, KindVariantGroup, KindVersionGroup:
		return true
	}
	return false
}

// refSpec declares one relationship attribute of a kind: the attribute
// name and whether it holds an ordered identifier list (many) or a
// single identifier.
type refSpec struct {
	name string
	many bool
}

// refSchema declares the relationship attributes per kind. Attribute
// names absent from a kind's list are plain values persisted verbatim.
//
// containerPortal on PBXContainerItemProxy stays a plain identifier
// string on purpose: treating it as a relationship would put a cycle
// through every target dependency (proxy → project → targets → proxy)
// and double-hold the project.
var refSchema = map[Kind][]refSpec{
	KindProject: {
		{name: "buildConfigurationList"},
		{name: "mainGroup"},
		{name: "productRefGroup"},
		{name: "targets", many: true},
	},
	KindGroup:        {{name: "children", many: true}},
	KindVariantGroup: {{name: "children", many: true}},
	KindVersionGroup: {
		{name: "children", many: true},
		{name: "currentVersion"},
	},
	KindFileReference:  {},
	KindReferenceProxy: {{name: "remoteRef"}},
	KindNativeTarget: {
		{name: "buildConfigurationList"},
		{name: "buildPhases", many: true},
		{name: "buildRules", many: true},
		{name: "dependencies", many: true},
		{name: "productReference"},
	},
	KindAggregateTarget: {
		{name: "buildConfigurationList"},
		{name: "buildPhases", many: true},
		{name: "dependencies", many: true},
	},
	KindLegacyTarget: {
		{name: "buildConfigurationList"},
		{name: "buildPhases", many: true},
		{name: "dependencies", many: true},
	},
	KindTargetDependency: {
		{name: "target"},
		{name: "targetProxy"},
	},
	KindContainerItemProxy:    {},
	KindBuildFile:             {{name: "fileRef"}},
	KindSourcesBuildPhase:     {{name: "files", many: true}},
	KindFrameworksBuildPhase:  {{name: "files", many: true}},
	KindResourcesBuildPhase:   {{name: "files", many: true}},
	KindCopyFilesBuildPhase:   {{name: "files", many: true}},
	KindShellScriptBuildPhase: {{name: "files", many: true}},
	KindHeadersBuildPhase:     {{name: "files", many: true}},
	KindConfigurationList:     {{name: "buildConfigurations", many: true}},
	KindBuildConfiguration:    {{name: "baseConfigurationReference"}},
}

// RefNames returns the relationship attribute names of k in declared
// order. Kinds without relationships return nil.
func (k Kind) RefNames() []string {
	specs := refSchema[k]
	if len(specs) == 0 {
		return nil
	}
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.name
	}
	return names
}

// refSpecFor returns the relationship spec for attribute name on kind,
// or false if name is a plain attribute there.
func refSpecFor(kind Kind, name string) (refSpec, bool) {
	for _, spec := range refSchema[kind] {
		if spec.name == name {
			return spec, true
		}
	}
	return refSpec{}, false
}

// defaultAttrs returns the kind-specific default attribute values applied
// to freshly created objects. Loading a persisted object never applies
// defaults; persisted data wins wholesale.
func defaultAttrs(kind Kind) map[string]any {
	switch kind {
	case KindProject:
		return map[string]any{
			"attributes":             map[string]any{},
			"compatibilityVersion":   "Xcode 14.0",
			"developmentRegion":      "en",
			"hasScannedForEncodings": "0",
			"knownRegions":           []any{"en", "Base"},
			"projectDirPath":         "",
			"projectRoot":            "",
			"targets":                []string{},
		}
	case KindGroup, KindVariantGroup:
		return map[string]any{
			"children":   []string{},
			"sourceTree": "<group>",
		}
	case KindVersionGroup:
		return map[string]any{
			"children":         []string{},
			"sourceTree":       "<group>",
			"versionGroupType": "wrapper.xcdatamodel",
		}
	case KindFileReference:
		return map[string]any{
			"includeInIndex": "1",
			"sourceTree":     "SOURCE_ROOT",
		}
	case KindNativeTarget:
		return map[string]any{
			"buildPhases":  []string{},
			"buildRules":   []string{},
			"dependencies": []string{},
		}
	case KindAggregateTarget, KindLegacyTarget:
		return map[string]any{
			"buildPhases":  []string{},
			"dependencies": []string{},
		}
	case KindSourcesBuildPhase, KindFrameworksBuildPhase, KindResourcesBuildPhase,
		KindHeadersBuildPhase:
		return map[string]any{
			"buildActionMask":                    "2147483647",
			"files":                              []string{},
			"runOnlyForDeploymentPostprocessing": "0",
		}
	case KindCopyFilesBuildPhase:
		return map[string]any{
			"buildActionMask":                    "2147483647",
			"dstPath":                            "",
			"dstSubfolderSpec":                   "16",
			"files":                              []string{},
			"runOnlyForDeploymentPostprocessing": "0",
		}
	case KindShellScriptBuildPhase:
		return map[string]any{
			"buildActionMask":                    "2147483647",
			"files":                              []string{},
			"inputPaths":                         []any{},
			"outputPaths":                        []any{},
			"runOnlyForDeploymentPostprocessing": "0",
			"shellPath":                          "/bin/sh",
			"shellScript":                        "",
		}
	case KindConfigurationList:
		return map[string]any{
			"buildConfigurations":           []string{},
			"defaultConfigurationIsVisible": "0",
		}
	case KindBuildConfiguration:
		return map[string]any{
			"buildSettings": map[string]any{},
		}
	default:
		return map[string]any{}
	}
}
