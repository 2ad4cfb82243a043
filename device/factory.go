package device

// Factory builds a Device out of a user-provided spec string.
type Factory interface {
	FromSpec(spec DeviceSpec) (Device, error)
}

// FactoryDocs is optionally implemented by factories that document their
// spec parameters for -help output.
type FactoryDocs interface {
	Help() string
}
