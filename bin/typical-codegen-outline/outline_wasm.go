// Copyright (c) 2026 The Typical Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

//go:build wasip1

package main

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/sietse/typical/codegen/wire"
)

// Buffers handed to the host, keyed by address. Keeping them here stops the
// garbage collector from reclaiming memory the host still reads or writes.
var buffers = make(map[uint32][]byte)

func main() {}

func keep(buf []byte) uint32 {
	ptr := uint32(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
	buffers[ptr] = buf
	return ptr
}

//go:wasmexport typical_codegen_allocate
func typicalCodegenAllocate(size uint32) uint32 {
	if size > math.MaxInt32 {
		return 0
	}
	return keep(make([]byte, max(size, 1)))
}

//go:wasmexport typical_codegen_deallocate
func typicalCodegenDeallocate(ptr uint32) {
	delete(buffers, ptr)
}

//go:wasmexport typical_codegen_generate
func typicalCodegenGenerate(requestPtr, responsePtrPtr uint32) uint32 {
	responsePtrBuf, ok := buffers[responsePtrPtr]
	if !ok || len(responsePtrBuf) < 4 {
		return 2
	}
	response, ok := generate(buffers[requestPtr])
	responseBuf, err := wire.EncodeResponse(response)
	if err != nil {
		responseBuf, _ = wire.EncodeResponse(&wire.Response{Error: err.Error()})
		ok = false
	}
	binary.LittleEndian.PutUint32(responsePtrBuf, keep(responseBuf))
	if !ok {
		return 1
	}
	return 0
}
