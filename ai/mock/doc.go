// Package mock provides test doubles for the ai pipeline interfaces.
//
// MockPipeline implements ai.Pipeline with deterministic hash-seeded
// vectors, so tests can run without an embedding service. MockLoader
// implements ai.PipelineLoader and counts loads per device.
//
// # Usage in Tests
//
//	loader := mock.NewMockLoader()
//	gen := embedding.NewGenerator(cfg, loader)
//	_, err := gen.Embed(ctx, "Gladius")
//	assert.Equal(t, 1, loader.LoadCount(ai.DeviceCPU))
//
//	// Simulate a missing GPU
//	loader = mock.FailingOn(ai.DeviceGPU, errors.New("no cuda"))
package mock
