package seeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sinchonkinder_backend/internals/configs"
	"sinchonkinder_backend/internals/constants"
	newsModel "sinchonkinder_backend/internals/features/news/posts/model"
	classroomModel "sinchonkinder_backend/internals/features/school/classrooms/model"
	authModel "sinchonkinder_backend/internals/features/users/auth/model"
	helper "sinchonkinder_backend/internals/helpers"
)

// Run seeds baseline data. Every step is idempotent: rows are looked up by
// their natural key (email, name, slug) before inserting, so re-running is
// safe.
func Run(db *gorm.DB) error {
	admin, err := seedUser(db,
		configs.GetEnv("SEED_ADMIN_EMAIL", "admin@sinchonkinder.kr"),
		configs.GetEnv("SEED_ADMIN_PASSWORD", "admin1234!"),
		"관리자", constants.RoleAdmin, constants.StatusActive)
	if err != nil {
		return fmt.Errorf("admin account: %w", err)
	}

	parent, err := seedUser(db,
		configs.GetEnv("SEED_PARENT_EMAIL", "parent@sinchonkinder.kr"),
		configs.GetEnv("SEED_PARENT_PASSWORD", "parent1234!"),
		"김하늘", constants.RoleParent, constants.StatusActive)
	if err != nil {
		return fmt.Errorf("parent account: %w", err)
	}

	classrooms, err := seedClassrooms(db)
	if err != nil {
		return fmt.Errorf("classrooms: %w", err)
	}

	if err := seedChildren(db, parent, classrooms); err != nil {
		return fmt.Errorf("children: %w", err)
	}

	if err := seedNewsPosts(db, admin); err != nil {
		return fmt.Errorf("news posts: %w", err)
	}

	return nil
}

func seedUser(db *gorm.DB, email, password, name, role, status string) (*authModel.UserModel, error) {
	var existing authModel.UserModel
	err := db.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := authModel.UserModel{
		UserName:         &name,
		UserEmail:        email,
		UserPasswordHash: string(hash),
		UserRole:         role,
		UserStatus:       status,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("✅ 계정 생성: %s (%s)", email, role)
	return &user, nil
}

func seedClassrooms(db *gorm.DB) (map[string]*classroomModel.ClassroomModel, error) {
	defs := []classroomModel.ClassroomModel{
		{ClassroomName: "해님반", ClassroomAgeRange: strPtr("만 3세"), ClassroomLeadTeacher: strPtr("박지은")},
		{ClassroomName: "달님반", ClassroomAgeRange: strPtr("만 4세"), ClassroomLeadTeacher: strPtr("이수진")},
		{ClassroomName: "별님반", ClassroomAgeRange: strPtr("만 5세"), ClassroomLeadTeacher: strPtr("최민정")},
	}

	out := make(map[string]*classroomModel.ClassroomModel, len(defs))
	for i := range defs {
		var existing classroomModel.ClassroomModel
		err := db.Where("classroom_name = ?", defs[i].ClassroomName).First(&existing).Error
		if err == nil {
			out[existing.ClassroomName] = &existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := db.Create(&defs[i]).Error; err != nil {
			return nil, err
		}
		log.Printf("✅ 반 생성: %s", defs[i].ClassroomName)
		out[defs[i].ClassroomName] = &defs[i]
	}
	return out, nil
}

func seedChildren(db *gorm.DB, parent *authModel.UserModel, classrooms map[string]*classroomModel.ClassroomModel) error {
	sun := classrooms["해님반"]
	if sun == nil {
		return errors.New("classroom 해님반 missing")
	}

	var child classroomModel.ChildModel
	err := db.Where("child_name = ?", "김단우").First(&child).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		child = classroomModel.ChildModel{
			ChildName:        "김단우",
			ChildStatus:      "active",
			ChildClassroomID: &sun.ClassroomID,
		}
		if err := db.Create(&child).Error; err != nil {
			return err
		}
		log.Printf("✅ 원아 생성: %s", child.ChildName)
	} else if err != nil {
		return err
	}

	var link classroomModel.ChildParentModel
	err = db.Where("child_parent_child_id = ? AND child_parent_parent_id = ?",
		child.ChildID, parent.UserID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		link = classroomModel.ChildParentModel{
			ChildParentChildID:  child.ChildID,
			ChildParentParentID: parent.UserID,
		}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
		log.Printf("✅ 보호자 연결: %s ↔ %s", child.ChildName, parent.UserEmail)
	} else if err != nil {
		return err
	}

	return nil
}

type seedPost struct {
	title    string
	category string
	summary  string
	body     string
}

func seedNewsPosts(db *gorm.DB, admin *authModel.UserModel) error {
	posts := []seedPost{
		{
			title:    "신촌유치원 홈페이지가 새롭게 열렸습니다",
			category: constants.CategoryAnnouncements,
			summary:  "새 홈페이지 오픈 안내",
			body: "학부모님들께 더 가까이 다가가기 위해 홈페이지를 새롭게 단장했습니다.\n\n" +
				"공지사항, 가정통신문, 학급 소식을 한곳에서 확인하실 수 있습니다.",
		},
		{
			title:    "3월 가정통신문",
			category: constants.CategoryNewsletter,
			summary:  "새 학기 준비 안내",
			body: "새 학기를 맞아 준비물과 등원 시간을 안내드립니다.\n\n" +
				"자세한 내용은 첨부된 가정통신문을 확인해 주세요.",
		},
		{
			title:    "봄 소풍 안내",
			category: constants.CategoryEvents,
			summary:  "4월 봄 소풍 일정",
			body: "4월 셋째 주에 봄 소풍을 다녀옵니다.\n\n" +
				"장소와 준비물은 각 반 담임 선생님께서 별도로 안내드립니다.",
		},
	}

	for _, p := range posts {
		var count int64
		if err := db.Model(&newsModel.NewsPostModel{}).
			Where("news_post_title = ?", p.title).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		// 한글 제목은 타임스탬프 기반 슬러그로 떨어지므로 같은 밀리초에
		// 만들어져도 유니크 인덱스에 걸리지 않게 접미사를 붙인다.
		slug, err := helper.EnsureUniqueSlugCI(context.Background(), db,
			"news_posts", "news_post_slug", helper.Slugify(p.title, 160), 160)
		if err != nil {
			return err
		}

		content, err := json.Marshal(helper.MarkdownToParagraphs(p.body))
		if err != nil {
			return err
		}
		summary := p.summary
		post := newsModel.NewsPostModel{
			NewsPostSlug:          slug,
			NewsPostTitle:         p.title,
			NewsPostCategory:      p.category,
			NewsPostSummary:       &summary,
			NewsPostContent:       datatypes.JSON(content),
			NewsPostPublishAt:     time.Now(),
			NewsPostAudienceScope: constants.ScopePublic,
			NewsPostCreatedBy:     &admin.UserID,
		}
		if err := db.Create(&post).Error; err != nil {
			return err
		}
		log.Printf("✅ 게시글 생성: %s", p.title)
	}
	return nil
}

func strPtr(s string) *string { return &s }
