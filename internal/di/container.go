package di

import (
	"go.uber.org/dig"
)

// Container 전역 의존성 주입 컨테이너
var Container *dig.Container

// InitContainer 컨테이너 초기화
func InitContainer() *dig.Container {
	Container = dig.New()
	return Container
}

// GetContainer 컨테이너 인스턴스 반환
func GetContainer() *dig.Container {
	return Container
}

// Invoke dig.Invoke 래퍼
func Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return Container.Invoke(function, opts...)
}

// Provide dig.Provide 래퍼
func Provide(constructor interface{}, opts ...dig.ProvideOption) error {
	return Container.Provide(constructor, opts...)
}
