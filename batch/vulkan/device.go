// Package vulkan adapts a vkngwrapper device to the batch buffer interfaces.
// Buffers are backed by host-visible, host-coherent device memory, so the
// batching core takes the mapped upload path and dirty ranges land in GPU
// memory with plain copies.
package vulkan

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/quiver/batch"
)

// Buffer wraps one core1_0.Buffer and its dedicated memory allocation.
type Buffer struct {
	buffer   core1_0.Buffer
	memory   core1_0.DeviceMemory
	byteSize int
}

func (b *Buffer) ByteSize() int {
	return b.byteSize
}

// VulkanBuffer returns the underlying buffer for binding in draw code.
func (b *Buffer) VulkanBuffer() core1_0.Buffer {
	return b.buffer
}

// Device implements batch.Device and batch.MappableDevice on a vkngwrapper
// logical device.
type Device struct {
	device              core1_0.Device
	memoryProperties    *core1_0.PhysicalDeviceMemoryProperties
	allocationCallbacks *driver.AllocationCallbacks
}

var _ batch.Device = (*Device)(nil)
var _ batch.MappableDevice = (*Device)(nil)

// NewDevice creates a Device for the provided logical device.
// allocationCallbacks may be nil.
func NewDevice(device core1_0.Device, physicalDevice core1_0.PhysicalDevice, allocationCallbacks *driver.AllocationCallbacks) *Device {
	return &Device{
		device:              device,
		memoryProperties:    physicalDevice.MemoryProperties(),
		allocationCallbacks: allocationCallbacks,
	}
}

func (d *Device) CreateBuffer(usage batch.BufferUsage, byteSize int) (batch.Buffer, error) {
	var bufferUsage core1_0.BufferUsageFlags
	switch usage {
	case batch.BufferUsageIndex:
		bufferUsage = core1_0.BufferUsageIndexBuffer
	case batch.BufferUsageVertex:
		bufferUsage = core1_0.BufferUsageVertexBuffer
	default:
		return nil, cerrors.Newf("vulkan: unknown buffer usage %d", int(usage))
	}

	buffer, _, err := d.device.CreateBuffer(d.allocationCallbacks, core1_0.BufferCreateInfo{
		Size:        byteSize,
		Usage:       bufferUsage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return nil, err
	}

	requirements := buffer.MemoryRequirements()
	typeIndex, err := d.findMemoryTypeIndex(requirements.MemoryTypeBits,
		core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if err != nil {
		buffer.Destroy(d.allocationCallbacks)
		return nil, err
	}

	memory, _, err := d.device.AllocateMemory(d.allocationCallbacks, core1_0.MemoryAllocateInfo{
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: typeIndex,
	})
	if err != nil {
		buffer.Destroy(d.allocationCallbacks)
		return nil, err
	}

	_, err = buffer.BindBufferMemory(memory, 0)
	if err != nil {
		memory.Free(d.allocationCallbacks)
		buffer.Destroy(d.allocationCallbacks)
		return nil, err
	}

	return &Buffer{
		buffer:   buffer,
		memory:   memory,
		byteSize: byteSize,
	}, nil
}

func (d *Device) WriteBuffer(buf batch.Buffer, byteOffset int, data []byte) error {
	vulkanBuf := buf.(*Buffer)

	ptr, _, err := vulkanBuf.memory.Map(byteOffset, len(data), 0)
	if err != nil {
		return err
	}

	copy(unsafe.Slice((*byte)(ptr), len(data)), data)
	vulkanBuf.memory.Unmap()
	return nil
}

func (d *Device) OpenMapped(buf batch.Buffer) ([]byte, error) {
	vulkanBuf := buf.(*Buffer)

	ptr, _, err := vulkanBuf.memory.Map(0, vulkanBuf.byteSize, 0)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(ptr), vulkanBuf.byteSize), nil
}

func (d *Device) CloseMapped(buf batch.Buffer) error {
	buf.(*Buffer).memory.Unmap()
	return nil
}

func (d *Device) DestroyBuffer(buf batch.Buffer) {
	vulkanBuf := buf.(*Buffer)
	vulkanBuf.buffer.Destroy(d.allocationCallbacks)
	vulkanBuf.memory.Free(d.allocationCallbacks)
}

func (d *Device) findMemoryTypeIndex(typeBits uint32, required core1_0.MemoryPropertyFlags) (int, error) {
	for i, memoryType := range d.memoryProperties.MemoryTypes {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if memoryType.PropertyFlags&required == required {
			return i, nil
		}
	}

	return 0, cerrors.Newf("vulkan: no host-visible memory type matches type bits 0x%x", typeBits)
}
