package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeNotRegistered indicates no registration exists for the requested
	// service key anywhere in the container tree.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
	// ErrCodeNoInstance indicates a registration was found but its factory
	// and scope chain produced no instance.
	ErrCodeNoInstance ErrorCode = "NO_INSTANCE"
	// ErrCodeFactoryFailed indicates a factory returned an error while
	// constructing an instance.
	ErrCodeFactoryFailed ErrorCode = "FACTORY_FAILED"
	// ErrCodeTypeMismatch indicates a resolved instance did not match the
	// requested service type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Lifecycle errors
const (
	// ErrCodeRegistryClosed indicates an operation was attempted on a closed
	// registry.
	ErrCodeRegistryClosed ErrorCode = "REGISTRY_CLOSED"
	// ErrCodeContainerMismatch indicates a container from a different
	// registry was used where containers must share one lock domain.
	ErrCodeContainerMismatch ErrorCode = "CONTAINER_MISMATCH"
	// ErrCodeDuplicateModule indicates a registration module with the same
	// name was added twice.
	ErrCodeDuplicateModule ErrorCode = "DUPLICATE_MODULE"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates registry settings failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeValidation indicates input failed field validation.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
)
