package i18n

// Message keys shared by all report writers. Metric names use the metric's
// snake_case key directly.
const (
	KeyTitle             = "title"
	KeyOverallMetrics    = "overall_metrics"
	KeyOverallScore      = "overall_score"
	KeyGrade             = "grade"
	KeyRunInfo           = "run_info"
	KeyRunID             = "run_id"
	KeyStructureFile     = "structure_file"
	KeyStructureDigest   = "structure_digest"
	KeyGeneratedPath     = "generated_path"
	KeyDateVerified      = "date_verified"
	KeySummary           = "summary"
	KeyMetric            = "metric"
	KeyScore             = "score"
	KeyStatus            = "status"
	KeyWeight            = "weight"
	KeyContribution      = "contribution"
	KeyContributionChart = "contribution_chart"
	KeyDetails           = "details"
	KeyMoreItems         = "more_items"
	KeyRunError          = "run_error"

	KeyExpectedDirectories   = "expected_directories"
	KeyActualDirectories     = "actual_directories"
	KeyExpectedFiles         = "expected_files"
	KeyActualFiles           = "actual_files"
	KeyDirectoryCoverageRate = "directory_coverage_rate"
	KeyFileCoverageRate      = "file_coverage_rate"
	KeyOverallCoverage       = "overall_coverage"
	KeyExpectedCount         = "expected_count"
	KeyActualCount           = "actual_count"
	KeyMatchedCount          = "matched_count"
	KeyCoverageRate          = "coverage_rate"
	KeyAccuracyRate          = "accuracy_rate"
	KeyMissingFiles          = "missing_files"
	KeyExtraFiles            = "extra_files"
	KeyMissingDirectories    = "missing_directories"
	KeyExtraDirectories      = "extra_directories"
	KeyTotalChecks           = "total_checks"
	KeyPassedChecks          = "passed_checks"
	KeyProjectLevel          = "project_level"
	KeyModuleLevel           = "module_level"
	KeyFeatureLevel          = "feature_level"
	KeyOverallAccuracy       = "overall_accuracy"
	KeyPreservedCount        = "preserved_count"
	KeyPreservationRate      = "preservation_rate"
	KeyMissingAnnotations    = "missing_annotations"
	KeyIndependenceRate      = "independence_rate"
	KeyModule                = "module"
	KeyFailedFiles           = "failed_files"

	KeyGradeExcellent = "excellent"
	KeyGradeGood      = "good"
	KeyGradePass      = "pass"
	KeyGradeFail      = "fail"
	KeyDescExcellent  = "excellent_desc"
	KeyDescGood       = "good_desc"
	KeyDescPass       = "pass_desc"
	KeyDescFail       = "fail_desc"

	KeyHistoryTitle   = "history_title"
	KeyPrevious       = "previous"
	KeyCurrent        = "current"
	KeyChange         = "change"
	KeyNoHistory      = "no_history"
	KeySingleRun      = "single_run"
	KeyImproved       = "improved"
	KeyRegressed      = "regressed"
	KeyUnchanged      = "unchanged"
)

var translations = map[Lang]map[string]string{
	LangEN: {
		KeyTitle:             "Project Structure Verification Report",
		KeyOverallMetrics:    "Overall Metrics",
		KeyOverallScore:      "Overall Score",
		KeyGrade:             "Grade",
		KeyRunInfo:           "Run Information",
		KeyRunID:             "Run ID",
		KeyStructureFile:     "Structure File",
		KeyStructureDigest:   "Structure Digest",
		KeyGeneratedPath:     "Generated Path",
		KeyDateVerified:      "Verified At",
		KeySummary:           "Metrics Summary",
		KeyMetric:            "Metric",
		KeyScore:             "Score",
		KeyStatus:            "Status",
		KeyWeight:            "Weight",
		KeyContribution:      "Contribution",
		KeyContributionChart: "Score Contribution",
		KeyDetails:           "Details",
		KeyMoreItems:         "... %d more",
		KeyRunError:          "The run stopped early: %s",

		"structure_coverage":      "Structure Coverage",
		"file_coverage":           "File Coverage",
		"directory_coverage":      "Directory Coverage",
		"template_accuracy":       "Template Accuracy",
		"hierarchy_accuracy":      "Hierarchy Accuracy",
		"annotation_preservation": "Annotation Preservation",
		"module_independence":     "Module Independence",

		KeyExpectedDirectories:   "Expected directories",
		KeyActualDirectories:     "Actual directories",
		KeyExpectedFiles:         "Expected files",
		KeyActualFiles:           "Actual files",
		KeyDirectoryCoverageRate: "Directory coverage",
		KeyFileCoverageRate:      "File coverage",
		KeyOverallCoverage:       "Overall coverage",
		KeyExpectedCount:         "Expected",
		KeyActualCount:           "Actual",
		KeyMatchedCount:          "Matched",
		KeyCoverageRate:          "Coverage rate",
		KeyAccuracyRate:          "Accuracy rate",
		KeyMissingFiles:          "Missing files (%d)",
		KeyExtraFiles:            "Extra files (%d)",
		KeyMissingDirectories:    "Missing directories (%d)",
		KeyExtraDirectories:      "Extra directories (%d)",
		KeyTotalChecks:           "Total checks",
		KeyPassedChecks:          "Passed checks",
		KeyProjectLevel:          "Project level",
		KeyModuleLevel:           "Module level",
		KeyFeatureLevel:          "Feature level",
		KeyOverallAccuracy:       "Overall accuracy",
		KeyPreservedCount:        "Preserved annotations",
		KeyPreservationRate:      "Preservation rate",
		KeyMissingAnnotations:    "Missing annotations (%d)",
		KeyIndependenceRate:      "Independence rate",
		KeyModule:                "Module",
		KeyFailedFiles:           "Failed template checks (%d)",

		KeyGradeExcellent: "Excellent",
		KeyGradeGood:      "Good",
		KeyGradePass:      "Pass",
		KeyGradeFail:      "Fail",
		KeyDescExcellent:  "The generator performs excellently and is ready for use.",
		KeyDescGood:       "The generator performs well; some metrics could be improved.",
		KeyDescPass:       "The generator is usable but needs improvement.",
		KeyDescFail:       "The generator needs major improvement.",

		KeyHistoryTitle: "Verification History",
		KeyPrevious:     "Previous",
		KeyCurrent:      "Current",
		KeyChange:       "Change",
		KeyNoHistory:    "No verification history for %s",
		KeySingleRun:    "Only one run recorded; nothing to compare yet.",
		KeyImproved:     "improved",
		KeyRegressed:    "regressed",
		KeyUnchanged:    "unchanged",
	},
	LangZhTW: {
		KeyTitle:             "專案結構驗證報告",
		KeyOverallMetrics:    "總體指標",
		KeyOverallScore:      "總體評分",
		KeyGrade:             "評級",
		KeyRunInfo:           "執行資訊",
		KeyRunID:             "執行 ID",
		KeyStructureFile:     "結構文件",
		KeyStructureDigest:   "結構摘要",
		KeyGeneratedPath:     "生成路徑",
		KeyDateVerified:      "驗證時間",
		KeySummary:           "指標總結",
		KeyMetric:            "指標類別",
		KeyScore:             "評分",
		KeyStatus:            "狀態",
		KeyWeight:            "權重",
		KeyContribution:      "貢獻分數",
		KeyContributionChart: "分數貢獻",
		KeyDetails:           "詳細資訊",
		KeyMoreItems:         "... 還有 %d 個",
		KeyRunError:          "驗證提前中止：%s",

		"structure_coverage":      "結構覆蓋率",
		"file_coverage":           "文件覆蓋率",
		"directory_coverage":      "目錄覆蓋率",
		"template_accuracy":       "模板準確性",
		"hierarchy_accuracy":      "層級準確性",
		"annotation_preservation": "註解保留率",
		"module_independence":     "模組獨立性",

		KeyExpectedDirectories:   "預期目錄數",
		KeyActualDirectories:     "實際目錄數",
		KeyExpectedFiles:         "預期文件數",
		KeyActualFiles:           "實際文件數",
		KeyDirectoryCoverageRate: "目錄覆蓋率",
		KeyFileCoverageRate:      "文件覆蓋率",
		KeyOverallCoverage:       "整體覆蓋率",
		KeyExpectedCount:         "預期數量",
		KeyActualCount:           "實際數量",
		KeyMatchedCount:          "匹配數量",
		KeyCoverageRate:          "覆蓋率",
		KeyAccuracyRate:          "準確率",
		KeyMissingFiles:          "缺失文件 (%d 個)",
		KeyExtraFiles:            "額外文件 (%d 個)",
		KeyMissingDirectories:    "缺失目錄 (%d 個)",
		KeyExtraDirectories:      "額外目錄 (%d 個)",
		KeyTotalChecks:           "總檢查項",
		KeyPassedChecks:          "通過檢查",
		KeyProjectLevel:          "專案層級",
		KeyModuleLevel:           "模組層級",
		KeyFeatureLevel:          "功能層級",
		KeyOverallAccuracy:       "整體準確率",
		KeyPreservedCount:        "保留註解數",
		KeyPreservationRate:      "保留率",
		KeyMissingAnnotations:    "缺失註解 (%d 個)",
		KeyIndependenceRate:      "獨立性率",
		KeyModule:                "模組",
		KeyFailedFiles:           "未通過的模板檢查 (%d 個)",

		KeyGradeExcellent: "優秀",
		KeyGradeGood:      "良好",
		KeyGradePass:      "及格",
		KeyGradeFail:      "不及格",
		KeyDescExcellent:  "生成器表現優秀，可以投入使用",
		KeyDescGood:       "生成器表現良好，建議優化部分指標",
		KeyDescPass:       "生成器基本可用，需要改進",
		KeyDescFail:       "生成器需要重大改進",

		KeyHistoryTitle: "驗證歷史",
		KeyPrevious:     "上次",
		KeyCurrent:      "本次",
		KeyChange:       "變化",
		KeyNoHistory:    "%s 沒有驗證歷史",
		KeySingleRun:    "只有一次驗證紀錄，尚無法比較。",
		KeyImproved:     "進步",
		KeyRegressed:    "退步",
		KeyUnchanged:    "持平",
	},
	LangZhCN: {
		KeyTitle:             "项目结构验证报告",
		KeyOverallMetrics:    "总体指标",
		KeyOverallScore:      "总体评分",
		KeyGrade:             "评级",
		KeyRunInfo:           "运行信息",
		KeyRunID:             "运行 ID",
		KeyStructureFile:     "结构文件",
		KeyStructureDigest:   "结构摘要",
		KeyGeneratedPath:     "生成路径",
		KeyDateVerified:      "验证时间",
		KeySummary:           "指标总结",
		KeyMetric:            "指标类别",
		KeyScore:             "评分",
		KeyStatus:            "状态",
		KeyWeight:            "权重",
		KeyContribution:      "贡献分数",
		KeyContributionChart: "分数贡献",
		KeyDetails:           "详细信息",
		KeyMoreItems:         "... 还有 %d 个",
		KeyRunError:          "验证提前中止：%s",

		"structure_coverage":      "结构覆盖率",
		"file_coverage":           "文件覆盖率",
		"directory_coverage":      "目录覆盖率",
		"template_accuracy":       "模板准确性",
		"hierarchy_accuracy":      "层级准确性",
		"annotation_preservation": "注释保留率",
		"module_independence":     "模块独立性",

		KeyExpectedDirectories:   "预期目录数",
		KeyActualDirectories:     "实际目录数",
		KeyExpectedFiles:         "预期文件数",
		KeyActualFiles:           "实际文件数",
		KeyDirectoryCoverageRate: "目录覆盖率",
		KeyFileCoverageRate:      "文件覆盖率",
		KeyOverallCoverage:       "整体覆盖率",
		KeyExpectedCount:         "预期数量",
		KeyActualCount:           "实际数量",
		KeyMatchedCount:          "匹配数量",
		KeyCoverageRate:          "覆盖率",
		KeyAccuracyRate:          "准确率",
		KeyMissingFiles:          "缺失文件 (%d 个)",
		KeyExtraFiles:            "额外文件 (%d 个)",
		KeyMissingDirectories:    "缺失目录 (%d 个)",
		KeyExtraDirectories:      "额外目录 (%d 个)",
		KeyTotalChecks:           "总检查项",
		KeyPassedChecks:          "通过检查",
		KeyProjectLevel:          "项目层级",
		KeyModuleLevel:           "模块层级",
		KeyFeatureLevel:          "功能层级",
		KeyOverallAccuracy:       "整体准确率",
		KeyPreservedCount:        "保留注释数",
		KeyPreservationRate:      "保留率",
		KeyMissingAnnotations:    "缺失注释 (%d 个)",
		KeyIndependenceRate:      "独立性率",
		KeyModule:                "模块",
		KeyFailedFiles:           "未通过的模板检查 (%d 个)",

		KeyGradeExcellent: "优秀",
		KeyGradeGood:      "良好",
		KeyGradePass:      "及格",
		KeyGradeFail:      "不及格",
		KeyDescExcellent:  "生成器表现优秀，可以投入使用",
		KeyDescGood:       "生成器表现良好，建议优化部分指标",
		KeyDescPass:       "生成器基本可用，需要改进",
		KeyDescFail:       "生成器需要重大改进",

		KeyHistoryTitle: "验证历史",
		KeyPrevious:     "上次",
		KeyCurrent:      "本次",
		KeyChange:       "变化",
		KeyNoHistory:    "%s 没有验证历史",
		KeySingleRun:    "只有一次验证记录，暂时无法比较。",
		KeyImproved:     "进步",
		KeyRegressed:    "退步",
		KeyUnchanged:    "持平",
	},
}
