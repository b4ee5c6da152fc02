package inbox

import (
	"slices"
	"time"

	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/application"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/job"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/user"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Partner 收件箱中的一个联系人
// 来自对话的是活跃联系人, 来自投递记录的是潜在联系人, 两者按Key合并
type Partner struct {
	UserId            bson.ObjectID
	Profile           *user.User
	ConversationId    bson.ObjectID // 只有活跃联系人有
	JobId             bson.ObjectID
	JobTitle          string
	ApplicationId     bson.ObjectID
	ApplicationStatus string
	UnreadCount       int64
	LastActive        time.Time // 对话的update_time
	CreateTime        time.Time // 对话或投递的创建时间
}

func (p *Partner) Key() PartnerKey {
	return KeyOf(p.UserId, p.JobId, p.ApplicationId)
}

// overlay 用活跃联系人的非零字段覆盖潜在联系人
func (p *Partner) overlay(a *Partner) {
	if a.Profile != nil {
		p.Profile = a.Profile
	}
	if !a.ConversationId.IsZero() {
		p.ConversationId = a.ConversationId
	}
	if !a.JobId.IsZero() {
		p.JobId = a.JobId
	}
	if a.JobTitle != "" {
		p.JobTitle = a.JobTitle
	}
	if !a.ApplicationId.IsZero() {
		p.ApplicationId = a.ApplicationId
	}
	if a.ApplicationStatus != "" {
		p.ApplicationStatus = a.ApplicationStatus
	}
	p.UnreadCount = a.UnreadCount
	if !a.LastActive.IsZero() {
		p.LastActive = a.LastActive
	}
	if !a.CreateTime.IsZero() {
		p.CreateTime = a.CreateTime
	}
}

// activity 排序依据, 没有活跃时间时使用创建时间
func (p *Partner) activity() time.Time {
	if !p.LastActive.IsZero() {
		return p.LastActive
	}
	return p.CreateTime
}

// Merge 合并活跃与潜在联系人, 键相同时以潜在联系人为底, 叠加活跃联系人的字段
func Merge(active, potential []*Partner) []*Partner {
	merged := make([]*Partner, 0, len(active)+len(potential))
	index := make(map[PartnerKey]*Partner, len(potential))
	for _, p := range potential {
		cp := *p
		if _, ok := index[cp.Key()]; ok {
			continue
		}
		index[cp.Key()] = &cp
		merged = append(merged, &cp)
	}
	for _, a := range active {
		if base, ok := index[a.Key()]; ok {
			base.overlay(a)
			continue
		}
		cp := *a
		index[cp.Key()] = &cp
		merged = append(merged, &cp)
	}
	SortByActivity(merged)
	return merged
}

// Without 去掉键在keys中的联系人
func Without(ps []*Partner, keys map[PartnerKey]struct{}) []*Partner {
	if len(keys) == 0 {
		return ps
	}
	kept := make([]*Partner, 0, len(ps))
	for _, p := range ps {
		if _, ok := keys[p.Key()]; !ok {
			kept = append(kept, p)
		}
	}
	return kept
}

// SortByActivity 按最近活跃倒序, 稳定排序
func SortByActivity(ps []*Partner) {
	slices.SortStableFunc(ps, func(a, b *Partner) int {
		return b.activity().Compare(a.activity())
	})
}

// StudentPotentials 学生投递过的职位的招聘者
// apps需按创建时间倒序, 同一(招聘者, 职位)只保留最先出现的即最新的投递
func StudentPotentials(apps []*application.Application, jobs map[bson.ObjectID]*job.Job) []*Partner {
	seen := make(map[PartnerKey]struct{}, len(apps))
	ps := make([]*Partner, 0, len(apps))
	for _, app := range apps {
		j, ok := jobs[app.JobId]
		if !ok || j.RecruiterId.IsZero() {
			continue
		}
		k := KeyOf(j.RecruiterId, j.ID, bson.NilObjectID)
		if _, ok = seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ps = append(ps, &Partner{
			UserId:            j.RecruiterId,
			JobId:             j.ID,
			JobTitle:          j.Title,
			ApplicationId:     app.ID,
			ApplicationStatus: app.Status,
			CreateTime:        app.CreateTime,
		})
	}
	return ps
}

// RecruiterPotentials 投递了招聘者职位的学生, 每次投递对应一个联系人
func RecruiterPotentials(apps []*application.Application, jobs map[bson.ObjectID]*job.Job) []*Partner {
	ps := make([]*Partner, 0, len(apps))
	for _, app := range apps {
		if app.StudentId.IsZero() {
			continue
		}
		p := &Partner{
			UserId:            app.StudentId,
			JobId:             app.JobId,
			ApplicationId:     app.ID,
			ApplicationStatus: app.Status,
			CreateTime:        app.CreateTime,
		}
		if j, ok := jobs[app.JobId]; ok {
			p.JobTitle = j.Title
		}
		ps = append(ps, p)
	}
	return ps
}

// Enrich 补全联系人资料与上下文信息
func Enrich(ps []*Partner, users map[bson.ObjectID]*user.User, jobs map[bson.ObjectID]*job.Job, apps map[bson.ObjectID]*application.Application) {
	for _, p := range ps {
		if u, ok := users[p.UserId]; ok {
			p.Profile = u
		}
		if app, ok := apps[p.ApplicationId]; ok {
			if p.JobId.IsZero() {
				p.JobId = app.JobId
			}
			if p.ApplicationStatus == "" {
				p.ApplicationStatus = app.Status
			}
		}
		if j, ok := jobs[p.JobId]; ok && p.JobTitle == "" {
			p.JobTitle = j.Title
		}
	}
}
