package hlfs

import (
	"github.com/stretchr/testify/mock"
)

type mockLowLevel struct {
	mock.Mock
}

func (m *mockLowLevel) Open(path string) (int, error) {
	args := m.Called(path)
	return args.Int(0), args.Error(1)
}

func (m *mockLowLevel) Close(fd int) error {
	return m.Called(fd).Error(0)
}

func (m *mockLowLevel) Exists(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockLowLevel) IsDirectory(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockLowLevel) IsRegularFile(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockLowLevel) SyncRead(fd int, p []byte, start, end int) (int, error) {
	args := m.Called(fd, p, start, end)
	return args.Int(0), args.Error(1)
}

func (m *mockLowLevel) SyncWrite(fd int, p []byte, start, end int) (int, error) {
	args := m.Called(fd, p, start, end)
	return args.Int(0), args.Error(1)
}

func (m *mockLowLevel) AsyncRead(fd int, p []byte, start, end int, done func(n int, err error)) {
	m.Called(fd, p, start, end, done)
}

func (m *mockLowLevel) AsyncWrite(fd int, p []byte, start, end int, done func(n int, err error)) {
	m.Called(fd, p, start, end, done)
}

// completeWith returns a Run func that fires the async completion inline.
func completeWith(n int, err error) func(mock.Arguments) {
	return func(args mock.Arguments) {
		done := args.Get(4).(func(int, error))
		done(n, err)
	}
}

// newMockFS returns a FileSystem over a mock where path is a regular file
// that opens as fd.
func newMockFS(path string, fd int, optFns ...Option) (*FileSystem, *mockLowLevel) {
	ll := new(mockLowLevel)
	ll.On("IsRegularFile", path).Return(true)
	ll.On("Open", path).Return(fd, nil)
	return New(ll, optFns...), ll
}
