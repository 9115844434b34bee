package fuji

import "github.com/pkg/errors"

// 两类可报告给用户的输入错误，均在重映射之前检测
var (
	// ErrMetadataUnavailable .tag 文件缺失、不可读或尺寸无效
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	// ErrSizeMismatch .bin 大小与任何合法场数都不匹配
	ErrSizeMismatch = errors.New(".bin size doesn't match .tag data")
)
