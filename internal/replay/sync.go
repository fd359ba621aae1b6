package replay

import (
	"github.com/LunarG/VulkanTools-sub014/internal/remap"
	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
	"github.com/LunarG/VulkanTools-sub014/internal/vkcall"
)

func (s *Session) createFence(call *vkcall.CreateFenceCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	fence, r := s.api.CreateFence(device, &call.CreateInfo)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.Fence, fence)
}

func (s *Session) resetFences(call *vkcall.ResetFencesCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	fences, err := remap.LookupAll(s.table, call.Fences)
	if err != nil {
		return err
	}
	return s.check(call.Result, s.api.ResetFences(device, fences))
}

// waitTimeout returns the timeout of a replayed wait. Waits which timed out
// in the trace use the recorded timeout, the others are bounded by the
// configured fence timeout.
func (s *Session) waitTimeout(recorded uint64, result vkapi.Result) uint64 {
	limit := uint64(s.config.FenceTimeout.Nanoseconds())
	if result == vkapi.Timeout || limit == 0 {
		return recorded
	}
	return min(recorded, limit)
}

func (s *Session) waitForFences(call *vkcall.WaitForFencesCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	fences, err := remap.LookupAll(s.table, call.Fences)
	if err != nil {
		return err
	}
	timeout := s.waitTimeout(call.Timeout, call.Result)
	r := s.api.WaitForFences(device, fences, call.WaitAll, timeout)
	return s.check(call.Result, r, vkapi.Success, vkapi.Timeout)
}

func (s *Session) getFenceStatus(call *vkcall.GetFenceStatusCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	fence, err := remap.Lookup(s.table, call.Fence)
	if err != nil {
		return err
	}
	return s.check(call.Result, s.api.GetFenceStatus(device, fence), vkapi.Success, vkapi.NotReady)
}

func (s *Session) createSemaphore(call *vkcall.CreateSemaphoreCall) error {
	device, err := remap.Lookup(s.table, call.Device)
	if err != nil {
		return err
	}
	semaphore, r := s.api.CreateSemaphore(device, &call.CreateInfo)
	if err := s.check(call.Result, r); err != nil {
		return err
	}
	return bind(s, call.Device, call.Semaphore, semaphore)
}
