package transport

// PaginationQuery 定义了列表请求的通用分页参数。
type PaginationQuery struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// TimeRangeQuery 定义了列表请求的通用时间范围参数（unix 秒）。
type TimeRangeQuery struct {
	StartTime int64 `form:"startTime"`
	EndTime   int64 `form:"endTime"`
}
