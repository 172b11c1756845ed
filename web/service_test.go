package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	tmpDir := t.TempDir()
	s, err := store.NewStore(tmpDir)
	if err != nil {
		t.Fatalf("初始化 store 失败: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return NewService(s, &Config{
		ListenAddr: "127.0.0.1:0",
		DataDir:    tmpDir,
	})
}

// doReq 发送一个测试请求，token 为空时不带认证头
func doReq(t *testing.T, svc *Service, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Auth-Token", token)
	}
	w := httptest.NewRecorder()
	svc.GetRouter().ServeHTTP(w, req)
	return w
}

// envelope 是标准响应外壳
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("解析响应失败: %v\n%s", err, w.Body.String())
	}
	if !env.Success {
		t.Fatalf("期望 success=true: %s", w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("解析 data 失败: %v\n%s", err, string(env.Data))
		}
	}
}

func registerUser(t *testing.T, svc *Service, email string) string {
	t.Helper()
	w := doReq(t, svc, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "小明",
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("注册失败: %d %s", w.Code, w.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &data)
	if data.Token == "" {
		t.Fatal("注册应返回会话 token")
	}
	return data.Token
}

func TestAuthRequired(t *testing.T) {
	svc := newTestService(t)

	w := doReq(t, svc, http.MethodGet, "/api/v1/stats", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("未登录访问期望 401, 实际 %d", w.Code)
	}

	w = doReq(t, svc, http.MethodGet, "/api/v1/stats", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("非法 token 期望 401, 实际 %d", w.Code)
	}

	// 健康检查不需要认证
	w = doReq(t, svc, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("健康检查期望 200, 实际 %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	registerUser(t, svc, "ming@example.com")

	// 密码错误和账号不存在返回同样的 401
	w := doReq(t, svc, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ming@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("密码错误期望 401, 实际 %d", w.Code)
	}
	w = doReq(t, svc, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "secret123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("账号不存在期望 401, 实际 %d", w.Code)
	}

	w = doReq(t, svc, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ming@example.com", "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d %s", w.Code, w.Body.String())
	}

	// 重复注册同一邮箱
	w = doReq(t, svc, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "x", "email": "ming@example.com", "password": "secret123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("重复邮箱期望 409, 实际 %d", w.Code)
	}
}

func TestStatsSnapshot(t *testing.T) {
	svc := newTestService(t)
	token := registerUser(t, svc, "ming@example.com")

	// 记一次学习、建一个任务并完成
	w := doReq(t, svc, http.MethodPost, "/api/v1/sessions", token, map[string]interface{}{
		"subject": "math", "durationMin": 60,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("记录学习失败: %d %s", w.Code, w.Body.String())
	}

	w = doReq(t, svc, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title": "读第三章", "type": "class",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("创建任务失败: %d %s", w.Code, w.Body.String())
	}
	var task struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &task)

	w = doReq(t, svc, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("完成任务失败: %d %s", w.Code, w.Body.String())
	}

	// 快照
	w = doReq(t, svc, http.MethodGet, "/api/v1/stats?timeframe=week", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("统计失败: %d %s", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
		t.Errorf("统计响应必须带 no-store: %q", cc)
	}

	var snap struct {
		User struct {
			Name       string `json:"name"`
			XP         int    `json:"xp"`
			StudyStats struct {
				TotalMinutes      int    `json:"totalMinutes"`
				TotalHours        string `json:"totalHours"`
				Streak            int    `json:"streak"`
				ProductivityScore int    `json:"productivityScore"`
			} `json:"studyStats"`
			TaskStats struct {
				Total     int `json:"total"`
				Completed int `json:"completed"`
			} `json:"taskStats"`
		} `json:"user"`
		Analytics struct {
			TotalSessions  int               `json:"totalSessions"`
			WeeklyProgress []json.RawMessage `json:"weeklyProgress"`
			HourlyStats    []json.RawMessage `json:"hourlyStats"`
			Categorical    []json.RawMessage `json:"categoricalProgress"`
			RecentMoods    []json.RawMessage `json:"recentMoods"`
		} `json:"analytics"`
	}
	decodeData(t, w, &snap)

	if snap.User.StudyStats.TotalMinutes != 60 || snap.User.StudyStats.TotalHours != "1.0" {
		t.Errorf("学习总量错误: %+v", snap.User.StudyStats)
	}
	if snap.User.StudyStats.Streak != 1 {
		t.Errorf("今天有活动, 连续天数期望 1, 实际 %d", snap.User.StudyStats.Streak)
	}
	if snap.User.TaskStats.Total != 1 || snap.User.TaskStats.Completed != 1 {
		t.Errorf("任务统计错误: %+v", snap.User.TaskStats)
	}
	if snap.User.StudyStats.ProductivityScore <= 0 {
		t.Errorf("有数据时得分应大于 0, 实际 %d", snap.User.StudyStats.ProductivityScore)
	}
	// 完成任务 +10，学习 60 分钟 +12
	if snap.User.XP != 22 {
		t.Errorf("经验值期望 22, 实际 %d", snap.User.XP)
	}
	if len(snap.Analytics.WeeklyProgress) != 7 {
		t.Errorf("周视图期望 7 条, 实际 %d", len(snap.Analytics.WeeklyProgress))
	}
	if len(snap.Analytics.HourlyStats) != 24 {
		t.Errorf("小时视图期望 24 条, 实际 %d", len(snap.Analytics.HourlyStats))
	}
	if len(snap.Analytics.Categorical) != 4 {
		t.Errorf("分类进度期望 4 条, 实际 %d", len(snap.Analytics.Categorical))
	}
	if snap.Analytics.RecentMoods == nil {
		t.Error("recentMoods 必须是空数组而不是 null")
	}
	if snap.Analytics.TotalSessions != 1 {
		t.Errorf("学习次数期望 1, 实际 %d", snap.Analytics.TotalSessions)
	}
}

func TestStatsInvalidOverride(t *testing.T) {
	svc := newTestService(t)
	token := registerUser(t, svc, "ming@example.com")

	w := doReq(t, svc, http.MethodGet, "/api/v1/stats?startOfToday=not-a-time", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法时间参数期望 400, 实际 %d", w.Code)
	}

	// 只给一半的覆盖边界不能被静默忽略
	w = doReq(t, svc, http.MethodGet, "/api/v1/stats?startOfToday=2025-06-10T00:00:00Z", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("残缺的覆盖边界期望 400, 实际 %d", w.Code)
	}

	// 倒置的区间同样拒绝
	w = doReq(t, svc, http.MethodGet,
		"/api/v1/stats?startOfToday=2025-06-11T00:00:00Z&endOfToday=2025-06-10T00:00:00Z", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("倒置的覆盖边界期望 400, 实际 %d", w.Code)
	}
}

// faultyStore 包装真实 store，让按 ID 查用户固定失败
type faultyStore struct {
	store.Store
}

var errFaultyDB = errors.New("SQL logic error: no such table: users (1)")

func (f *faultyStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return nil, errFaultyDB
}

func TestInternalErrorBodyIsGeneric(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := store.NewStore(tmpDir)
	if err != nil {
		t.Fatalf("初始化 store 失败: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := NewService(&faultyStore{Store: s}, &Config{
		ListenAddr: "127.0.0.1:0",
		DataDir:    tmpDir,
	})
	token := registerUser(t, svc, "ming@example.com")

	w := doReq(t, svc, http.MethodGet, "/api/v1/stats", token, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("存储故障期望 500, 实际 %d %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if strings.Contains(body, "no such table") || strings.Contains(body, "SQL") {
		t.Errorf("500 响应不能携带底层错误细节: %s", body)
	}
	if !strings.Contains(body, "查询用户失败") {
		t.Errorf("500 响应应是固定文案: %s", body)
	}
}

func TestExportReport(t *testing.T) {
	svc := newTestService(t)
	token := registerUser(t, svc, "ming@example.com")

	doReq(t, svc, http.MethodPost, "/api/v1/sessions", token, map[string]interface{}{
		"subject": "math", "durationMin": 30,
	})

	w := doReq(t, svc, http.MethodGet, "/api/v1/export/report?format=csv", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("导出失败: %d %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("导出应是附件下载: %q", cd)
	}
	if !strings.Contains(w.Body.String(), "math") {
		t.Error("CSV 里应包含学习记录")
	}

	w = doReq(t, svc, http.MethodGet, "/api/v1/export/report?format=pdf", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("不支持的格式期望 400, 实际 %d", w.Code)
	}
}

func TestTaskValidation(t *testing.T) {
	svc := newTestService(t)
	token := registerUser(t, svc, "ming@example.com")

	w := doReq(t, svc, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title": "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("空标题期望 400, 实际 %d", w.Code)
	}

	w = doReq(t, svc, http.MethodPost, "/api/v1/tasks/nope/complete", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("不存在的任务期望 404, 实际 %d", w.Code)
	}

	w = doReq(t, svc, http.MethodPost, "/api/v1/moods", token, map[string]interface{}{
		"mood": 9,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("越界心情期望 400, 实际 %d", w.Code)
	}

	w = doReq(t, svc, http.MethodPost, "/api/v1/timetable", token, map[string]interface{}{
		"day": "Monday", "slot": "09:00-10:00", "subject": "数学",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法星期期望 400, 实际 %d", w.Code)
	}
}
