package database

import (
	"log"

	"gorm.io/gorm"

	newsModel "sinchonkinder_backend/internals/features/news/posts/model"
	inquiryModel "sinchonkinder_backend/internals/features/parents/inquiries/model"
	resourceModel "sinchonkinder_backend/internals/features/parents/resources/model"
	classPostModel "sinchonkinder_backend/internals/features/school/class_posts/model"
	scheduleModel "sinchonkinder_backend/internals/features/school/class_schedules/model"
	classroomModel "sinchonkinder_backend/internals/features/school/classrooms/model"
	authModel "sinchonkinder_backend/internals/features/users/auth/model"
)

// Migrate keeps the schema in sync at startup. Order matters for the
// foreign keys: referenced tables first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authModel.UserModel{},
		&classroomModel.ClassroomModel{},
		&classroomModel.ChildModel{},
		&classroomModel.ChildParentModel{},
		&newsModel.NewsPostModel{},
		&newsModel.NewsAttachmentModel{},
		&classPostModel.ClassPostModel{},
		&classPostModel.ClassPostAttachmentModel{},
		&scheduleModel.ClassScheduleModel{},
		&inquiryModel.ParentInquiryModel{},
		&resourceModel.ParentResourceModel{},
	); err != nil {
		return err
	}
	log.Println("✅ 스키마 마이그레이션 완료")
	return nil
}
