// Package wgpu adapts a gogpu/wgpu HAL device to the batch buffer interfaces.
// Buffers are created copy-dst and uploads go through queue writes; the HAL
// handles staging internally, so the mapped path is not offered.
package wgpu

import (
	cerrors "github.com/cockroachdb/errors"
	types "github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/vkngwrapper/quiver/batch"
)

// Buffer wraps one hal.Buffer.
type Buffer struct {
	buffer   hal.Buffer
	byteSize int
}

func (b *Buffer) ByteSize() int {
	return b.byteSize
}

// HALBuffer returns the underlying buffer for binding in draw code.
func (b *Buffer) HALBuffer() hal.Buffer {
	return b.buffer
}

// Device implements batch.Device on a HAL device and its submission queue.
type Device struct {
	device hal.Device
	queue  hal.Queue
}

var _ batch.Device = (*Device)(nil)

// NewDevice creates a Device for the provided HAL device and queue.
func NewDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{
		device: device,
		queue:  queue,
	}
}

func (d *Device) CreateBuffer(usage batch.BufferUsage, byteSize int) (batch.Buffer, error) {
	var bufferUsage types.BufferUsage
	switch usage {
	case batch.BufferUsageIndex:
		bufferUsage = types.BufferUsageIndex
	case batch.BufferUsageVertex:
		bufferUsage = types.BufferUsageVertex
	default:
		return nil, cerrors.Newf("wgpu: unknown buffer usage %d", int(usage))
	}

	buffer, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: usage.String(),
		Size:  uint64(byteSize),
		Usage: bufferUsage | types.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, cerrors.Wrapf(err, "wgpu: failed to create %s buffer of %d bytes", usage, byteSize)
	}

	return &Buffer{
		buffer:   buffer,
		byteSize: byteSize,
	}, nil
}

func (d *Device) WriteBuffer(buf batch.Buffer, byteOffset int, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	d.queue.WriteBuffer(buf.(*Buffer).buffer, uint64(byteOffset), data)
	return nil
}

func (d *Device) DestroyBuffer(buf batch.Buffer) {
	d.device.DestroyBuffer(buf.(*Buffer).buffer)
}
