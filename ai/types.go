package ai

import (
	"fmt"
	"strings"
)

// Device selects where embedding inference runs.
type Device string

const (
	DeviceCPU  Device = "cpu"
	DeviceGPU  Device = "gpu"
	DeviceAuto Device = "auto"
)

// ParseDevice converts a configuration string to a Device.
// Matching is case-insensitive; "cuda" is accepted as "gpu".
func ParseDevice(s string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return DeviceCPU, nil
	case "gpu", "cuda":
		return DeviceGPU, nil
	case "auto", "":
		return DeviceAuto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDevice, s)
}

// Precision names accepted for InferenceOptions.DType.
const (
	DTypeFP32 = "fp32"
	DTypeFP16 = "fp16"
	DTypeQ8   = "q8"
)

// InferenceOptions are the device-specific settings handed to a pipeline
// loader.
type InferenceOptions struct {
	// DType is the weight precision the model runs at.
	DType string

	// Threads caps inference threads. Zero lets the runtime decide.
	Threads int
}

// DefaultInferenceOptions returns the defaults for a concrete device:
// fp32 on CPU, fp16 on GPU.
func DefaultInferenceOptions(d Device) InferenceOptions {
	if d == DeviceGPU {
		return InferenceOptions{DType: DTypeFP16}
	}
	return InferenceOptions{DType: DTypeFP32}
}
