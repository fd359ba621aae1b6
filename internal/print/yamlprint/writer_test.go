package yamlprint_test

import (
	"bytes"
	"testing"

	"github.com/LunarG/VulkanTools-sub014/format"
	"github.com/LunarG/VulkanTools-sub014/internal/assert"
	"github.com/LunarG/VulkanTools-sub014/internal/print/yamlprint"
)

func TestWriteNothing(t *testing.T) {
	b := new(bytes.Buffer)
	w := yamlprint.NewWriter[format.GPU](b)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), "")
}

func TestWriteValues(t *testing.T) {
	b := new(bytes.Buffer)
	w := yamlprint.NewWriter[format.GPU](b)
	_, err := w.Write([]format.GPU{
		{Name: "llvmpipe", VendorID: 0x10005, APIVersion: 4206847},
		{Name: "Mali-G78", VendorID: 0x13b5, DeviceID: 0x92020010},
	})
	assert.OK(t, err)
	assert.OK(t, w.Close())
	assert.Equal(t, b.String(), `name: llvmpipe
vendorID: 65541
deviceID: 0
driverVersion: 0
apiVersion: 4206847
---
name: Mali-G78
vendorID: 5045
deviceID: 2449604624
driverVersion: 0
apiVersion: 0
`)
}
