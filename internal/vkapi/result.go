package vkapi

import "strconv"

// Result is a VkResult return code.
type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	EventSet                  Result = 3
	EventReset                Result = 4
	Incomplete                Result = 5
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
	ErrorFormatNotSupported   Result = -11
	ErrorSurfaceLostKHR       Result = -1000000000
	SuboptimalKHR             Result = 1000001003
	ErrorOutOfDateKHR         Result = -1000001004
	ErrorValidationFailedEXT  Result = -1000011001
)

var resultNames = map[Result]string{
	Success:                   "VK_SUCCESS",
	NotReady:                  "VK_NOT_READY",
	Timeout:                   "VK_TIMEOUT",
	EventSet:                  "VK_EVENT_SET",
	EventReset:                "VK_EVENT_RESET",
	Incomplete:                "VK_INCOMPLETE",
	ErrorOutOfHostMemory:      "VK_ERROR_OUT_OF_HOST_MEMORY",
	ErrorOutOfDeviceMemory:    "VK_ERROR_OUT_OF_DEVICE_MEMORY",
	ErrorInitializationFailed: "VK_ERROR_INITIALIZATION_FAILED",
	ErrorDeviceLost:           "VK_ERROR_DEVICE_LOST",
	ErrorMemoryMapFailed:      "VK_ERROR_MEMORY_MAP_FAILED",
	ErrorLayerNotPresent:      "VK_ERROR_LAYER_NOT_PRESENT",
	ErrorExtensionNotPresent:  "VK_ERROR_EXTENSION_NOT_PRESENT",
	ErrorFeatureNotPresent:    "VK_ERROR_FEATURE_NOT_PRESENT",
	ErrorIncompatibleDriver:   "VK_ERROR_INCOMPATIBLE_DRIVER",
	ErrorTooManyObjects:       "VK_ERROR_TOO_MANY_OBJECTS",
	ErrorFormatNotSupported:   "VK_ERROR_FORMAT_NOT_SUPPORTED",
	ErrorSurfaceLostKHR:       "VK_ERROR_SURFACE_LOST_KHR",
	SuboptimalKHR:             "VK_SUBOPTIMAL_KHR",
	ErrorOutOfDateKHR:         "VK_ERROR_OUT_OF_DATE_KHR",
	ErrorValidationFailedEXT:  "VK_ERROR_VALIDATION_FAILED_EXT",
}

func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return "VkResult(" + strconv.Itoa(int(r)) + ")"
}

// Failed reports whether r is an error code.
func (r Result) Failed() bool { return r < 0 }
