package build

// DeploymentType is an enum specifying the deployment to compile.
type DeploymentType byte

const (
	// Development is a deployment that writes unit test logs to stdout
	// when built with the stdlog tag.
	Development DeploymentType = iota

	// Production is a deployment that only logs through the sub logger
	// constructors handed to NewSubLogger.
	Production
)

// String returns a human readable name for a build type.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}
