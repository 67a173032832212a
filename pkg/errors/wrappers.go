package errors

import "fmt"

// InvalidSignature reports a declaration string the signature parser cannot accept.
func InvalidSignature(input, reason string) *BaseError {
	return Newf(InvalidSignatureCode, "invalid signature %q: %s", input, reason).
		WithContext("input", input)
}

// InvalidOperation reports builder misuse detected at the call site.
func InvalidOperation(operation, reason string) *BaseError {
	return Newf(InvalidOperationCode, "invalid operation %s: %s", operation, reason).
		WithContext("operation", operation)
}

// MissingKey reports a metadata lookup for a key that was never stored with that type.
func MissingKey(key, typeName string) *BaseError {
	return Newf(MissingKeyCode, "missing key %q of type %s", key, typeName).
		WithContext("key", key).
		WithContext("type", typeName)
}

// WrapManifestError wraps failures while loading or interpreting a manifest
func WrapManifestError(path string, cause error) *BaseError {
	return Wrap(ManifestErrorCode, fmt.Sprintf("failed to load manifest '%s'", path), cause).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}
