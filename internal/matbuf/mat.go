// Package matbuf provides an owned wrapper around gocv.Mat used for the
// detector's scratch buffers. Unlike a general-purpose GUI image pipeline,
// the detector is documented non-thread-safe (one instance per goroutine),
// so this wrapper drops the mutex/refcount bookkeeping a concurrent caller
// would need and keeps only lifetime and bounds-checked pixel access.
package matbuf

import (
	"fmt"
	"runtime"

	"gocv.io/x/gocv"
)

// Mat is a bounds-checked, explicitly-owned gocv.Mat.
type Mat struct {
	mat     gocv.Mat
	isValid bool
}

// New allocates a zeroed Mat of the given size and type.
func New(rows, cols int, matType gocv.MatType) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matbuf: invalid dimensions %dx%d", cols, rows)
	}

	m := gocv.NewMatWithSize(rows, cols, matType)
	if m.Empty() {
		m.Close()
		return nil, fmt.Errorf("matbuf: failed to create Mat %dx%d", cols, rows)
	}

	buf := &Mat{mat: m, isValid: true}
	runtime.SetFinalizer(buf, (*Mat).finalize)
	return buf, nil
}

// FromMat clones an existing gocv.Mat into an owned Mat.
func FromMat(src gocv.Mat) (*Mat, error) {
	if src.Empty() {
		return nil, fmt.Errorf("matbuf: source Mat is empty")
	}

	cloned := src.Clone()
	if cloned.Empty() {
		cloned.Close()
		return nil, fmt.Errorf("matbuf: failed to clone Mat")
	}

	buf := &Mat{mat: cloned, isValid: true}
	runtime.SetFinalizer(buf, (*Mat).finalize)
	return buf, nil
}

// EnsureSize resizes the backing Mat in place only if its current
// dimensions or type differ, amortizing allocation across Detect calls
// the way the detector's scratch buffers are required to.
func (m *Mat) EnsureSize(rows, cols int, matType gocv.MatType) error {
	if m.isValid && m.mat.Rows() == rows && m.mat.Cols() == cols && m.mat.Type() == matType {
		return nil
	}

	if m.isValid {
		m.mat.Close()
	}

	fresh := gocv.NewMatWithSize(rows, cols, matType)
	if fresh.Empty() {
		fresh.Close()
		m.isValid = false
		return fmt.Errorf("matbuf: failed to resize Mat to %dx%d", cols, rows)
	}

	m.mat = fresh
	m.isValid = true
	return nil
}

func (m *Mat) IsValid() bool { return m.isValid && !m.mat.Empty() }
func (m *Mat) Empty() bool {
	if !m.isValid {
		return true
	}
	return m.mat.Empty()
}
func (m *Mat) Rows() int {
	if !m.isValid {
		return 0
	}
	return m.mat.Rows()
}
func (m *Mat) Cols() int {
	if !m.isValid {
		return 0
	}
	return m.mat.Cols()
}
func (m *Mat) Channels() int {
	if !m.isValid {
		return 0
	}
	return m.mat.Channels()
}
func (m *Mat) Type() gocv.MatType {
	if !m.isValid {
		return gocv.MatTypeCV8UC1
	}
	return m.mat.Type()
}

// GetMat exposes the underlying gocv.Mat for passing into gocv operations.
func (m *Mat) GetMat() gocv.Mat { return m.mat }

func (m *Mat) Clone() (*Mat, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("matbuf: cannot clone invalid Mat")
	}
	return FromMat(m.mat)
}

func (m *Mat) CopyTo(dst *Mat) error {
	if !m.IsValid() {
		return fmt.Errorf("matbuf: source Mat is invalid")
	}
	if !dst.IsValid() {
		return fmt.Errorf("matbuf: destination Mat is invalid")
	}
	m.mat.CopyTo(&dst.mat)
	return nil
}

func (m *Mat) GetUCharAt(row, col int) uint8 {
	return m.mat.GetUCharAt(row, col)
}

func (m *Mat) SetUCharAt(row, col int, value uint8) {
	m.mat.SetUCharAt(row, col, value)
}

func (m *Mat) GetFloatAt(row, col int) float32 {
	return m.mat.GetFloatAt(row, col)
}

func (m *Mat) SetFloatAt(row, col int, value float32) {
	m.mat.SetFloatAt(row, col, value)
}

func (m *Mat) SetUCharAt3(row, col, channel int, value uint8) {
	m.mat.SetUCharAt3(row, col, channel, value)
}

func (m *Mat) Close() {
	if m.isValid {
		m.mat.Close()
		m.isValid = false
		runtime.SetFinalizer(m, nil)
	}
}

func (m *Mat) finalize() {
	if m.isValid {
		m.Close()
	}
}

// ValidateForOperation mirrors the teacher's safe.ValidateMatForOperation
// bounds/validity checks, kept as a free function since matbuf.Mat no
// longer carries the nil-receiver defensiveness a shared, ref-counted Mat
// needed.
func ValidateForOperation(m *Mat, operation string) error {
	if m == nil {
		return fmt.Errorf("matbuf: Mat is nil for operation: %s", operation)
	}
	if !m.IsValid() {
		return fmt.Errorf("matbuf: Mat is invalid for operation: %s", operation)
	}
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return fmt.Errorf("matbuf: Mat has invalid dimensions %dx%d for operation: %s", m.Cols(), m.Rows(), operation)
	}
	return nil
}
